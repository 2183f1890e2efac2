package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/totegamma/plura/internal/domain"
	"github.com/totegamma/plura/internal/infra/database/models"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n domain.Notification) error {
	model := models.Notification{
		ID:           n.ID,
		Notification: n.Notification,
		AgencyID:     n.AgencyID,
		SubAccountID: n.SubAccountID,
		UserID:       n.UserID,
		CreatedAt:    n.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *NotificationRepository) ListByAgency(ctx context.Context, agencyID string, limit int) ([]domain.Notification, error) {
	var rows []models.Notification
	err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, domain.Notification{
			ID:           row.ID,
			Notification: row.Notification,
			AgencyID:     row.AgencyID,
			SubAccountID: row.SubAccountID,
			UserID:       row.UserID,
			CreatedAt:    row.CreatedAt,
		})
	}
	return notifications, nil
}
