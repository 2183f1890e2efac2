package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/totegamma/plura/internal/domain"
	"github.com/totegamma/plura/internal/infra/database/models"
)

type SidebarRepository struct {
	db *gorm.DB
}

func NewSidebarRepository(db *gorm.DB) *SidebarRepository {
	return &SidebarRepository{db: db}
}

// CreateMany inserts the options in one statement, keeping their order.
func (r *SidebarRepository) CreateMany(ctx context.Context, options []domain.SidebarOption) error {
	if len(options) == 0 {
		return nil
	}
	rows := make([]models.SidebarOption, 0, len(options))
	for i, o := range options {
		id := o.ID
		if id == "" {
			id = uuid.NewString()
		}
		rows = append(rows, models.SidebarOption{
			ID:       id,
			Name:     o.Name,
			Link:     o.Link,
			Icon:     o.Icon,
			Position: i,
			AgencyID: o.AgencyID,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *SidebarRepository) ListByAgency(ctx context.Context, agencyID string) ([]domain.SidebarOption, error) {
	var rows []models.SidebarOption
	err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	options := make([]domain.SidebarOption, 0, len(rows))
	for _, row := range rows {
		options = append(options, domain.SidebarOption{
			ID:        row.ID,
			Name:      row.Name,
			Link:      row.Link,
			Icon:      row.Icon,
			AgencyID:  row.AgencyID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return options, nil
}
