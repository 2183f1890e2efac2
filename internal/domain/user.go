package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleAgencyOwner     Role = "AGENCY_OWNER"
	RoleAgencyAdmin     Role = "AGENCY_ADMIN"
	RoleSubAccountUser  Role = "SUBACCOUNT_USER"
	RoleSubAccountGuest Role = "SUBACCOUNT_GUEST"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAgencyOwner, RoleAgencyAdmin, RoleSubAccountUser, RoleSubAccountGuest:
		return true
	default:
		return false
	}
}

// CanManageAgency reports whether the role may edit agency settings.
func (r Role) CanManageAgency() bool {
	return r == RoleAgencyOwner || r == RoleAgencyAdmin
}

// User is a person known to the console. ID is shared with the identity provider.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	AgencyID  *string   `json:"agencyId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Agency *Agency `json:"agency,omitempty"`
}

// Profile is the authenticated caller as reported by the identity provider.
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// WithCaller stores the authenticated caller in ctx.
func WithCaller(ctx context.Context, p Profile) context.Context {
	return context.WithValue(ctx, CallerCtxKey, p)
}

// CallerFromContext returns the authenticated caller. ok is false when the
// request carries no verified identity.
func CallerFromContext(ctx context.Context) (Profile, bool) {
	p, ok := ctx.Value(CallerCtxKey).(Profile)
	if !ok || p.Email == "" {
		return Profile{}, false
	}
	return p, true
}
