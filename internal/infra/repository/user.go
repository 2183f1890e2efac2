package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/totegamma/plura/internal/domain"
	"github.com/totegamma/plura/internal/infra/database/models"
	"github.com/totegamma/plura/internal/usecase"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error
	if err != nil {
		return domain.User{}, notFound(err, "user")
	}
	return userToDomain(user), nil
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	model := models.User{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		Email:     user.Email,
		Role:      string(user.Role),
		AgencyID:  user.AgencyID,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update changes the selected fields of the user owning email. It fails
// with NotFoundError when there is no such user.
func (r *UserRepository) Update(ctx context.Context, email string, fields usecase.UserFields) error {
	values := map[string]any{}
	if fields.Role != nil {
		values["role"] = string(*fields.Role)
	}
	setIf(values, "agency_id", fields.AgencyID)
	if len(values) == 0 {
		_, err := r.GetByEmail(ctx, email)
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r *UserRepository) DetachAgency(ctx context.Context, agencyID string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("agency_id = ?", agencyID).
		Update("agency_id", nil).Error
}

// FirstBySubAccount returns a member of the agency owning the sub-account.
func (r *UserRepository) FirstBySubAccount(ctx context.Context, subAccountID string) (domain.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN sub_accounts ON sub_accounts.agency_id = users.agency_id").
		Where("sub_accounts.id = ?", subAccountID).
		Order("users.created_at ASC").
		Take(&user).Error
	if err != nil {
		return domain.User{}, notFound(err, "user")
	}
	return userToDomain(user), nil
}

func userToDomain(m models.User) domain.User {
	return domain.User{
		ID:        m.ID,
		Name:      m.Name,
		AvatarURL: m.AvatarURL,
		Email:     m.Email,
		Role:      domain.Role(m.Role),
		AgencyID:  m.AgencyID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
