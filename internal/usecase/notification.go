package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/totegamma/plura/internal/domain"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200
)

type NotificationUsecase struct {
	db        Database
	publisher NotificationPublisher
}

func NewNotificationUsecase(db Database, publisher NotificationPublisher) *NotificationUsecase {
	return &NotificationUsecase{db: db, publisher: publisher}
}

// Record appends an activity notification on behalf of the caller. Without
// a caller the first member of the sub-account's agency is used as actor.
// When no actor can be found the activity is dropped.
func (uc *NotificationUsecase) Record(ctx context.Context, input domain.ActivityInput) error {
	ctx, span := tracer.Start(ctx, "Notification.Usecase.Record")
	defer span.End()

	if input.AgencyID == "" && input.SubAccountID == "" {
		return domain.ValidationError{Field: "agencyId", Reason: "either agencyId or subaccountId must be provided"}
	}

	var actor domain.User
	var err error
	if caller, ok := domain.CallerFromContext(ctx); ok {
		actor, err = uc.db.Users().GetByEmail(ctx, caller.Email)
	} else if input.SubAccountID != "" {
		actor, err = uc.db.Users().FirstBySubAccount(ctx, input.SubAccountID)
	} else {
		err = domain.NotFoundError{Resource: "user"}
	}
	if errors.Is(err, domain.ErrNotFound) {
		slog.InfoContext(
			ctx, "no user found for activity log",
			slog.String("description", input.Description),
			slog.String("module", "notification"),
		)
		return nil
	}
	if err != nil {
		return storeError("lookup activity actor", err)
	}

	agencyID := input.AgencyID
	if agencyID == "" {
		sub, err := uc.db.SubAccounts().Get(ctx, input.SubAccountID)
		if err != nil {
			return storeError("lookup sub account", err)
		}
		agencyID = sub.AgencyID
	}

	var subAccountID *string
	if input.SubAccountID != "" {
		subAccountID = &input.SubAccountID
	}

	notification := newNotification(actor, agencyID, subAccountID, input.Description)
	if err := uc.db.Notifications().Create(ctx, notification); err != nil {
		span.RecordError(err)
		return storeError("create notification", err)
	}

	uc.publish(ctx, notification)
	return nil
}

// List returns the newest notifications of an agency.
func (uc *NotificationUsecase) List(ctx context.Context, agencyID string, limit int) ([]domain.Notification, error) {
	ctx, span := tracer.Start(ctx, "Notification.Usecase.List")
	defer span.End()

	if err := ensureMember(ctx, uc.db, agencyID); err != nil {
		return nil, storeError("list notifications", err)
	}

	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	notifications, err := uc.db.Notifications().ListByAgency(ctx, agencyID, limit)
	if err != nil {
		return nil, storeError("list notifications", err)
	}
	return notifications, nil
}

// Authorize checks that the caller may follow the agency's live feed.
func (uc *NotificationUsecase) Authorize(ctx context.Context, agencyID string) error {
	return storeError("authorize feed", ensureMember(ctx, uc.db, agencyID))
}

func (uc *NotificationUsecase) publish(ctx context.Context, notification domain.Notification) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, notification); err != nil {
		slog.WarnContext(
			ctx, "failed to publish notification",
			slog.String("error", err.Error()),
			slog.String("agency", notification.AgencyID),
			slog.String("module", "notification"),
		)
	}
}

func newNotification(actor domain.User, agencyID string, subAccountID *string, description string) domain.Notification {
	return domain.Notification{
		ID:           uuid.NewString(),
		Notification: fmt.Sprintf("%s | %s", actor.Name, description),
		AgencyID:     agencyID,
		SubAccountID: subAccountID,
		UserID:       actor.ID,
		CreatedAt:    time.Now().UTC(),
	}
}
