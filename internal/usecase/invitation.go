package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/totegamma/plura/internal/domain"
)

// AcceptResult is the agency the caller belongs to after acceptance.
// Accepted is false when the agency id comes from an existing membership
// rather than a consumed invitation.
type AcceptResult struct {
	AgencyID string      `json:"agencyId"`
	Role     domain.Role `json:"role"`
	Accepted bool        `json:"accepted"`
	Warning  string      `json:"warning,omitempty"`
}

type InvitationUsecase struct {
	db        Database
	identity  IdentityProvider
	publisher NotificationPublisher
}

func NewInvitationUsecase(db Database, identity IdentityProvider, publisher NotificationPublisher) *InvitationUsecase {
	return &InvitationUsecase{db: db, identity: identity, publisher: publisher}
}

// Accept consumes the caller's pending invitation. Without one it falls back
// to the agency of the caller's existing user row. ok is false when there is
// no caller or nothing to return.
func (uc *InvitationUsecase) Accept(ctx context.Context) (AcceptResult, bool, error) {
	ctx, span := tracer.Start(ctx, "Invitation.Usecase.Accept")
	defer span.End()

	caller, ok := domain.CallerFromContext(ctx)
	if !ok {
		return AcceptResult{}, false, nil
	}

	var (
		result       AcceptResult
		found        bool
		member       domain.User
		notification domain.Notification
	)
	err := uc.db.WithTransaction(ctx, func(ctx context.Context, tx Store) error {
		invitation, err := tx.Invitations().GetPendingByEmail(ctx, caller.Email)
		if errors.Is(err, domain.ErrNotFound) {
			user, err := tx.Users().GetByEmail(ctx, caller.Email)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if user.AgencyID != nil {
				result = AcceptResult{AgencyID: *user.AgencyID, Role: user.Role}
				found = true
			}
			return nil
		}
		if err != nil {
			return err
		}

		if invitation.Role == domain.RoleAgencyOwner {
			return ErrOwnerInvitation
		}

		member = domain.User{
			ID:        caller.ID,
			Name:      caller.Name,
			AvatarURL: caller.ImageURL,
			Email:     invitation.Email,
			Role:      invitation.Role,
			AgencyID:  &invitation.AgencyID,
		}
		if err := CreateTeamUser(ctx, tx, member); err != nil {
			return err
		}

		notification = newNotification(member, invitation.AgencyID, nil, "Joined")
		if err := tx.Notifications().Create(ctx, notification); err != nil {
			return errors.Wrap(err, "record join notification")
		}

		if err := tx.Invitations().Delete(ctx, invitation.ID); err != nil {
			return errors.Wrap(err, "consume invitation")
		}

		result = AcceptResult{AgencyID: invitation.AgencyID, Role: invitation.Role, Accepted: true}
		found = true
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return AcceptResult{}, true, storeError("accept invitation", err)
	}
	if !found {
		return AcceptResult{}, false, nil
	}
	if !result.Accepted {
		return result, true, nil
	}

	slog.InfoContext(
		ctx, "invitation accepted",
		slog.String("agency", result.AgencyID),
		slog.String("user", member.ID),
		slog.String("module", "invitation"),
	)

	if err := publishRole(ctx, uc.identity, member); err != nil {
		result.Warning = "role could not be published to the identity provider"
	}
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, notification); err != nil {
			slog.WarnContext(
				ctx, "failed to publish notification",
				slog.String("error", err.Error()),
				slog.String("module", "invitation"),
			)
		}
	}
	return result, true, nil
}

// CreateTeamUser adds a member to an agency. An existing user row for the
// email is moved into the agency instead of being created again. The agency
// owner role is never granted here.
func CreateTeamUser(ctx context.Context, tx Store, user domain.User) error {
	if user.Role == domain.RoleAgencyOwner {
		return ErrOwnerInvitation
	}
	if !user.Role.Valid() {
		return domain.ValidationError{Field: "role", Reason: "unknown role"}
	}
	if user.AgencyID == nil || *user.AgencyID == "" {
		return domain.ValidationError{Field: "agencyId", Reason: "required for team members"}
	}

	existing, err := tx.Users().GetByEmail(ctx, user.Email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		now := time.Now().UTC()
		user.CreatedAt = now
		user.UpdatedAt = now
		return errors.Wrap(tx.Users().Create(ctx, user), "create team user")
	case err != nil:
		return err
	case existing.Role == domain.RoleAgencyOwner:
		return domain.ValidationError{Field: "email", Reason: "already owns an agency"}
	default:
		role := user.Role
		return errors.Wrap(
			tx.Users().Update(ctx, user.Email, UserFields{Role: &role, AgencyID: user.AgencyID}),
			"join existing user",
		)
	}
}
