package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/totegamma/plura/internal/domain"
)

// callerUser returns the user row of the authenticated caller. A missing
// caller or row is ErrForbidden.
func callerUser(ctx context.Context, s Store) (domain.User, error) {
	caller, ok := domain.CallerFromContext(ctx)
	if !ok {
		return domain.User{}, domain.ErrForbidden
	}
	user, err := s.Users().GetByEmail(ctx, caller.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.ErrForbidden
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// ensureMember checks that the caller belongs to the agency.
func ensureMember(ctx context.Context, s Store, agencyID string) error {
	user, err := callerUser(ctx, s)
	if err != nil {
		return err
	}
	if user.AgencyID == nil || *user.AgencyID != agencyID {
		return domain.ErrForbidden
	}
	return nil
}

// ensureManager checks that the caller administers the agency.
func ensureManager(ctx context.Context, s Store, agencyID string) error {
	user, err := callerUser(ctx, s)
	if err != nil {
		return err
	}
	if user.AgencyID == nil || *user.AgencyID != agencyID || !user.Role.CanManageAgency() {
		return domain.ErrForbidden
	}
	return nil
}

// checkInitFields limits what a caller may set on their own user row.
// Ownership comes from provisioning an agency and membership from an
// invitation, so Init can keep the current agency and role or lower the role
// within it, never raise it.
func checkInitFields(existing *domain.User, input InitUserInput) error {
	if input.AgencyID != nil {
		if existing == nil || existing.AgencyID == nil || *existing.AgencyID != *input.AgencyID {
			return domain.ErrForbidden
		}
	}
	if input.Role == nil {
		return nil
	}

	var current domain.Role
	if existing != nil {
		current = existing.Role
	}
	switch role := *input.Role; {
	case role == current:
		return nil
	case current == domain.RoleAgencyOwner:
		// an owner stays owner while the agency exists
		return domain.ErrForbidden
	case role == domain.RoleAgencyOwner, role == domain.RoleAgencyAdmin:
		return domain.ErrForbidden
	}
	return nil
}
