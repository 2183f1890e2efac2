package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/totegamma/plura/internal/usecase"
)

// Store hands out repositories bound to one gorm handle, either the pool
// or an open transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithTransaction runs fn in a single database transaction. gorm commits
// when fn returns nil and rolls back on error or panic.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx usecase.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &Store{db: tx})
	})
}

func (s *Store) Agencies() usecase.AgencyRepository {
	return NewAgencyRepository(s.db)
}

func (s *Store) Users() usecase.UserRepository {
	return NewUserRepository(s.db)
}

func (s *Store) Sidebar() usecase.SidebarRepository {
	return NewSidebarRepository(s.db)
}

func (s *Store) Invitations() usecase.InvitationRepository {
	return NewInvitationRepository(s.db)
}

func (s *Store) Notifications() usecase.NotificationRepository {
	return NewNotificationRepository(s.db)
}

func (s *Store) SubAccounts() usecase.SubAccountRepository {
	return NewSubAccountRepository(s.db)
}
