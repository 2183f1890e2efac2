package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/totegamma/plura/internal/domain"
)

// InitUserInput carries the optional assignment applied to the caller.
type InitUserInput struct {
	Role     *domain.Role `json:"role,omitempty"`
	AgencyID *string      `json:"agencyId,omitempty"`
}

// InitUserResult is the persisted user. Warning is set when the role could
// not be published to the identity provider; the user row is committed
// regardless.
type InitUserResult struct {
	User    domain.User `json:"user"`
	Warning string      `json:"warning,omitempty"`
}

type UserUsecase struct {
	db       Database
	identity IdentityProvider
}

func NewUserUsecase(db Database, identity IdentityProvider) *UserUsecase {
	return &UserUsecase{db: db, identity: identity}
}

// Init upserts the caller's user row. ok is false when there is no
// authenticated caller. Role and agency changes that would grant more than
// the caller already holds are ErrForbidden.
func (uc *UserUsecase) Init(ctx context.Context, input InitUserInput) (InitUserResult, bool, error) {
	ctx, span := tracer.Start(ctx, "User.Usecase.Init")
	defer span.End()

	caller, ok := domain.CallerFromContext(ctx)
	if !ok {
		return InitUserResult{}, false, nil
	}
	if input.Role != nil && !input.Role.Valid() {
		return InitUserResult{}, true, domain.ValidationError{Field: "role", Reason: "unknown role"}
	}
	if input.AgencyID != nil && *input.AgencyID == "" {
		input.AgencyID = nil
	}

	var user domain.User
	err := uc.db.WithTransaction(ctx, func(ctx context.Context, tx Store) error {
		existing, err := tx.Users().GetByEmail(ctx, caller.Email)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			if err := checkInitFields(nil, input); err != nil {
				return err
			}
			role := domain.RoleSubAccountUser
			if input.Role != nil {
				role = *input.Role
			}
			now := time.Now().UTC()
			err = tx.Users().Create(ctx, domain.User{
				ID:        caller.ID,
				Name:      caller.Name,
				AvatarURL: caller.ImageURL,
				Email:     caller.Email,
				Role:      role,
				AgencyID:  input.AgencyID,
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				return errors.Wrap(err, "create user")
			}
		case err != nil:
			return err
		default:
			if err := checkInitFields(&existing, input); err != nil {
				return err
			}
			if input.Role != nil || input.AgencyID != nil {
				err = tx.Users().Update(ctx, caller.Email, UserFields{Role: input.Role, AgencyID: input.AgencyID})
				if err != nil {
					return errors.Wrap(err, "update user")
				}
			}
		}
		user, err = tx.Users().GetByEmail(ctx, caller.Email)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return InitUserResult{}, true, storeError("init user", err)
	}

	result := InitUserResult{User: user}
	if err := publishRole(ctx, uc.identity, user); err != nil {
		result.Warning = "role could not be published to the identity provider"
	}
	return result, true, nil
}

// Details returns the caller's user with agency, navigation entries and
// sub-accounts. ok is false for unauthenticated callers and for callers
// without a user row.
func (uc *UserUsecase) Details(ctx context.Context) (*domain.User, bool, error) {
	ctx, span := tracer.Start(ctx, "User.Usecase.Details")
	defer span.End()

	caller, ok := domain.CallerFromContext(ctx)
	if !ok {
		return nil, false, nil
	}

	user, err := uc.db.Users().GetByEmail(ctx, caller.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, storeError("get user", err)
	}

	if user.AgencyID != nil {
		agency, err := uc.db.Agencies().Get(ctx, *user.AgencyID)
		if err != nil {
			return nil, true, storeError("get agency", err)
		}
		agency.SidebarOptions, err = uc.db.Sidebar().ListByAgency(ctx, agency.ID)
		if err != nil {
			return nil, true, storeError("list sidebar options", err)
		}
		agency.SubAccounts, err = uc.db.SubAccounts().ListByAgency(ctx, agency.ID)
		if err != nil {
			return nil, true, storeError("list sub accounts", err)
		}
		user.Agency = &agency
	}

	return &user, true, nil
}

// publishRole mirrors the user's role into the identity provider's metadata.
// Failures are logged and returned for the caller to surface as a warning.
func publishRole(ctx context.Context, identity IdentityProvider, user domain.User) error {
	role := user.Role
	if role == "" {
		role = domain.RoleSubAccountUser
	}
	err := identity.PublishRole(ctx, user.ID, role)
	if err != nil {
		slog.WarnContext(
			ctx, "failed to publish role",
			slog.String("error", err.Error()),
			slog.String("user", user.ID),
			slog.String("module", "identity"),
		)
	}
	return err
}
