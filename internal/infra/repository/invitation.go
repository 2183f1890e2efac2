package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/totegamma/plura/internal/domain"
	"github.com/totegamma/plura/internal/infra/database/models"
)

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) GetPendingByEmail(ctx context.Context, email string) (domain.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, string(domain.InvitationPending)).
		Take(&invitation).Error
	if err != nil {
		return domain.Invitation{}, notFound(err, "invitation")
	}
	return domain.Invitation{
		ID:       invitation.ID,
		Email:    invitation.Email,
		AgencyID: invitation.AgencyID,
		Status:   domain.InvitationStatus(invitation.Status),
		Role:     domain.Role(invitation.Role),
	}, nil
}

func (r *InvitationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invitation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "invitation"}
	}
	return nil
}
