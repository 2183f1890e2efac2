package usecase

import (
	"context"
	"io"

	"github.com/totegamma/plura/internal/domain"
)

// UnitOfWork runs fn inside one all-or-nothing transaction. The Store handed
// to fn is bound to the transaction; fn returning an error rolls back every
// write made through it.
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

// Store groups the repositories of the primary datastore.
type Store interface {
	Agencies() AgencyRepository
	Users() UserRepository
	Sidebar() SidebarRepository
	Invitations() InvitationRepository
	Notifications() NotificationRepository
	SubAccounts() SubAccountRepository
}

// Database is a Store that can also open transactions.
type Database interface {
	Store
	UnitOfWork
}

// AgencyRepository defines persistence for agencies.
type AgencyRepository interface {
	Get(ctx context.Context, id string) (domain.Agency, error)
	GetForUpdate(ctx context.Context, id string) (domain.Agency, error)
	Create(ctx context.Context, agency domain.Agency) error
	Update(ctx context.Context, agency domain.Agency) error
	ApplyUpdate(ctx context.Context, id string, update domain.AgencyUpdate) error
	Delete(ctx context.Context, id string) error
}

// UserFields selects the user columns to change. Nil fields are untouched.
type UserFields struct {
	Role     *domain.Role
	AgencyID *string
}

// UserRepository defines persistence for users.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user domain.User) error
	Update(ctx context.Context, email string, fields UserFields) error
	DetachAgency(ctx context.Context, agencyID string) error
	FirstBySubAccount(ctx context.Context, subAccountID string) (domain.User, error)
}

// SidebarRepository defines persistence for navigation entries.
type SidebarRepository interface {
	CreateMany(ctx context.Context, options []domain.SidebarOption) error
	ListByAgency(ctx context.Context, agencyID string) ([]domain.SidebarOption, error)
}

// InvitationRepository defines lookup and consumption of invitations.
type InvitationRepository interface {
	GetPendingByEmail(ctx context.Context, email string) (domain.Invitation, error)
	Delete(ctx context.Context, id string) error
}

// NotificationRepository defines the append-only activity log.
type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) error
	ListByAgency(ctx context.Context, agencyID string, limit int) ([]domain.Notification, error)
}

// SubAccountRepository defines lookup of sub-accounts.
type SubAccountRepository interface {
	Get(ctx context.Context, id string) (domain.SubAccount, error)
	ListByAgency(ctx context.Context, agencyID string) ([]domain.SubAccount, error)
}

// IdentityProvider is the external authentication service.
type IdentityProvider interface {
	Verify(ctx context.Context, token string) (domain.Profile, error)
	PublishRole(ctx context.Context, userID string, role domain.Role) error
}

// AgencyCache is a best-effort read cache in front of AgencyRepository.Get.
type AgencyCache interface {
	Get(ctx context.Context, id string) (domain.Agency, bool)
	Set(ctx context.Context, agency domain.Agency)
	Invalidate(ctx context.Context, id string)
}

// NotificationPublisher fans out freshly recorded notifications.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification domain.Notification) error
}

// ObjectStorage stores uploaded files and returns their public URL.
type ObjectStorage interface {
	Put(ctx context.Context, object, contentType string, body io.Reader) (string, error)
}
