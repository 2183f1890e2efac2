package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/plura/internal/domain"
	"github.com/totegamma/plura/internal/infra/database/models"
)

type AgencyRepository struct {
	db *gorm.DB
}

func NewAgencyRepository(db *gorm.DB) *AgencyRepository {
	return &AgencyRepository{db: db}
}

func (r *AgencyRepository) Get(ctx context.Context, id string) (domain.Agency, error) {
	var agency models.Agency
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&agency).Error
	if err != nil {
		return domain.Agency{}, notFound(err, "agency")
	}
	return agencyToDomain(agency), nil
}

// GetForUpdate locks the agency row until the surrounding transaction ends.
func (r *AgencyRepository) GetForUpdate(ctx context.Context, id string) (domain.Agency, error) {
	var agency models.Agency
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&agency).Error
	if err != nil {
		return domain.Agency{}, notFound(err, "agency")
	}
	return agencyToDomain(agency), nil
}

func (r *AgencyRepository) Create(ctx context.Context, agency domain.Agency) error {
	model := agencyFromDomain(agency)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update overwrites the mutable columns of an existing agency.
func (r *AgencyRepository) Update(ctx context.Context, agency domain.Agency) error {
	result := r.db.WithContext(ctx).
		Model(&models.Agency{}).
		Where("id = ?", agency.ID).
		Updates(map[string]any{
			"name":          agency.Name,
			"company_email": agency.CompanyEmail,
			"company_phone": agency.CompanyPhone,
			"address":       agency.Address,
			"city":          agency.City,
			"zip_code":      agency.ZipCode,
			"state":         agency.State,
			"country":       agency.Country,
			"white_label":   agency.WhiteLabel,
			"agency_logo":   agency.AgencyLogo,
			"goal":          agency.Goal,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "agency"}
	}
	return nil
}

func (r *AgencyRepository) ApplyUpdate(ctx context.Context, id string, update domain.AgencyUpdate) error {
	values := map[string]any{}
	setIf(values, "name", update.Name)
	setIf(values, "agency_logo", update.AgencyLogo)
	setIf(values, "company_email", update.CompanyEmail)
	setIf(values, "company_phone", update.CompanyPhone)
	setIf(values, "white_label", update.WhiteLabel)
	setIf(values, "address", update.Address)
	setIf(values, "city", update.City)
	setIf(values, "zip_code", update.ZipCode)
	setIf(values, "state", update.State)
	setIf(values, "country", update.Country)
	setIf(values, "goal", update.Goal)
	if len(values) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.Agency{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "agency"}
	}
	return nil
}

func (r *AgencyRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Agency{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "agency"}
	}
	return nil
}

func setIf[T any](values map[string]any, column string, v *T) {
	if v != nil {
		values[column] = *v
	}
}

func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFoundError{Resource: resource}
	}
	return err
}

func agencyToDomain(m models.Agency) domain.Agency {
	return domain.Agency{
		ID:               m.ID,
		ConnectAccountID: m.ConnectAccountID,
		CustomerID:       m.CustomerID,
		Name:             m.Name,
		AgencyLogo:       m.AgencyLogo,
		CompanyEmail:     m.CompanyEmail,
		CompanyPhone:     m.CompanyPhone,
		WhiteLabel:       m.WhiteLabel,
		Address:          m.Address,
		City:             m.City,
		ZipCode:          m.ZipCode,
		State:            m.State,
		Country:          m.Country,
		Goal:             m.Goal,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func agencyFromDomain(a domain.Agency) models.Agency {
	return models.Agency{
		ID:               a.ID,
		ConnectAccountID: a.ConnectAccountID,
		CustomerID:       a.CustomerID,
		Name:             a.Name,
		AgencyLogo:       a.AgencyLogo,
		CompanyEmail:     a.CompanyEmail,
		CompanyPhone:     a.CompanyPhone,
		WhiteLabel:       a.WhiteLabel,
		Address:          a.Address,
		City:             a.City,
		ZipCode:          a.ZipCode,
		State:            a.State,
		Country:          a.Country,
		Goal:             a.Goal,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
