package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/totegamma/plura/internal/domain"
	"github.com/totegamma/plura/internal/infra/database/models"
)

type SubAccountRepository struct {
	db *gorm.DB
}

func NewSubAccountRepository(db *gorm.DB) *SubAccountRepository {
	return &SubAccountRepository{db: db}
}

func (r *SubAccountRepository) Get(ctx context.Context, id string) (domain.SubAccount, error) {
	var sub models.SubAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&sub).Error
	if err != nil {
		return domain.SubAccount{}, notFound(err, "sub account")
	}
	return subAccountToDomain(sub), nil
}

func (r *SubAccountRepository) ListByAgency(ctx context.Context, agencyID string) ([]domain.SubAccount, error) {
	var rows []models.SubAccount
	err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	subs := make([]domain.SubAccount, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, subAccountToDomain(row))
	}
	return subs, nil
}

func subAccountToDomain(m models.SubAccount) domain.SubAccount {
	return domain.SubAccount{
		ID:           m.ID,
		AgencyID:     m.AgencyID,
		Name:         m.Name,
		CompanyEmail: m.CompanyEmail,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
