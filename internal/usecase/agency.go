package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/totegamma/plura/internal/domain"
)

var tracer = otel.Tracer("usecase")

type AgencyUsecase struct {
	db       Database
	cache    AgencyCache
	activity *NotificationUsecase
}

func NewAgencyUsecase(db Database, cache AgencyCache, activity *NotificationUsecase) *AgencyUsecase {
	return &AgencyUsecase{db: db, cache: cache, activity: activity}
}

// Upsert creates the agency, or updates it when the id already exists, and
// makes the user owning the contact email its agency owner. Default
// navigation entries are seeded only on creation. Only the caller can be
// named contact of a new agency, and a user owning another agency is never
// moved. Everything happens in one transaction.
func (uc *AgencyUsecase) Upsert(ctx context.Context, agency domain.Agency) (*domain.Agency, error) {
	ctx, span := tracer.Start(ctx, "Agency.Usecase.Upsert")
	defer span.End()

	agency.CompanyEmail = strings.TrimSpace(agency.CompanyEmail)
	if agency.CompanyEmail == "" {
		return nil, domain.ValidationError{Field: "companyEmail", Reason: "required"}
	}
	if agency.ID == "" {
		agency.ID = uuid.NewString()
	}

	var result domain.Agency
	var created bool
	err := uc.db.WithTransaction(ctx, func(ctx context.Context, tx Store) error {
		_, err := tx.Agencies().GetForUpdate(ctx, agency.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			created = true
			caller, ok := domain.CallerFromContext(ctx)
			if !ok || !strings.EqualFold(caller.Email, agency.CompanyEmail) {
				return domain.ErrForbidden
			}
			if agency.Goal == 0 {
				agency.Goal = domain.DefaultAgencyGoal
			}
			if err := tx.Agencies().Create(ctx, agency); err != nil {
				return errors.Wrap(err, "create agency")
			}
			if err := tx.Sidebar().CreateMany(ctx, domain.DefaultAgencySidebar(agency.ID)); err != nil {
				return errors.Wrap(err, "seed sidebar options")
			}
		case err != nil:
			return errors.Wrap(err, "lookup agency")
		default:
			if err := ensureManager(ctx, tx, agency.ID); err != nil {
				return err
			}
			if err := tx.Agencies().Update(ctx, agency); err != nil {
				return errors.Wrap(err, "update agency")
			}
		}

		contact, err := tx.Users().GetByEmail(ctx, agency.CompanyEmail)
		if err != nil {
			return errors.Wrap(err, "lookup agency owner")
		}
		if contact.AgencyID != nil && *contact.AgencyID != agency.ID {
			if contact.Role == domain.RoleAgencyOwner || !created {
				return domain.ValidationError{Field: "companyEmail", Reason: "user belongs to another agency"}
			}
		}

		owner := domain.RoleAgencyOwner
		err = tx.Users().Update(ctx, agency.CompanyEmail, UserFields{Role: &owner, AgencyID: &agency.ID})
		if err != nil {
			return errors.Wrap(err, "link agency owner")
		}

		result, err = tx.Agencies().Get(ctx, agency.ID)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return nil, storeError("upsert agency", err)
	}

	uc.cache.Invalidate(ctx, result.ID)

	description := "Updated agency details"
	if created {
		description = "Created agency"
	}
	uc.recordActivity(ctx, result.ID, description)

	return &result, nil
}

// Get returns the agency with its navigation entries.
func (uc *AgencyUsecase) Get(ctx context.Context, id string) (*domain.Agency, error) {
	ctx, span := tracer.Start(ctx, "Agency.Usecase.Get")
	defer span.End()

	if err := ensureMember(ctx, uc.db, id); err != nil {
		return nil, storeError("get agency", err)
	}

	if cached, ok := uc.cache.Get(ctx, id); ok {
		return &cached, nil
	}

	agency, err := uc.db.Agencies().Get(ctx, id)
	if err != nil {
		return nil, storeError("get agency", err)
	}
	agency.SidebarOptions, err = uc.db.Sidebar().ListByAgency(ctx, id)
	if err != nil {
		return nil, storeError("list sidebar options", err)
	}

	uc.cache.Set(ctx, agency)
	return &agency, nil
}

// UpdateDetails applies a partial update, e.g. a new goal, and logs it.
func (uc *AgencyUsecase) UpdateDetails(ctx context.Context, id string, update domain.AgencyUpdate) (*domain.Agency, error) {
	ctx, span := tracer.Start(ctx, "Agency.Usecase.UpdateDetails")
	defer span.End()

	if update.Empty() {
		return nil, domain.ValidationError{Field: "body", Reason: "no fields to update"}
	}
	if update.CompanyEmail != nil && strings.TrimSpace(*update.CompanyEmail) == "" {
		return nil, domain.ValidationError{Field: "companyEmail", Reason: "required"}
	}
	if update.Goal != nil && *update.Goal < 1 {
		return nil, domain.ValidationError{Field: "goal", Reason: "must be at least 1"}
	}

	var result domain.Agency
	err := uc.db.WithTransaction(ctx, func(ctx context.Context, tx Store) error {
		if err := ensureManager(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.Agencies().ApplyUpdate(ctx, id, update); err != nil {
			return err
		}
		var err error
		result, err = tx.Agencies().Get(ctx, id)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return nil, storeError("update agency", err)
	}
	uc.cache.Invalidate(ctx, id)

	description := "Updated agency details"
	if update.Goal != nil {
		description = fmt.Sprintf("Updated agency goal to | %d Subaccounts", *update.Goal)
	}
	uc.recordActivity(ctx, id, description)

	return &result, nil
}

func (uc *AgencyUsecase) recordActivity(ctx context.Context, agencyID, description string) {
	if uc.activity == nil {
		return
	}
	if err := uc.activity.Record(ctx, domain.ActivityInput{AgencyID: agencyID, Description: description}); err != nil {
		slog.WarnContext(
			ctx, "failed to record agency activity",
			slog.String("error", err.Error()),
			slog.String("module", "agency"),
		)
	}
}

// Delete removes the agency. Navigation entries, sub-accounts, invitations
// and notifications go with it; member users are detached.
func (uc *AgencyUsecase) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Agency.Usecase.Delete")
	defer span.End()

	err := uc.db.WithTransaction(ctx, func(ctx context.Context, tx Store) error {
		if err := ensureManager(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.Users().DetachAgency(ctx, id); err != nil {
			return err
		}
		return tx.Agencies().Delete(ctx, id)
	})
	if err != nil {
		span.RecordError(err)
		return storeError("delete agency", err)
	}
	uc.cache.Invalidate(ctx, id)
	return nil
}
