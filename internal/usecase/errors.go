package usecase

import (
	"github.com/pkg/errors"

	"github.com/totegamma/plura/internal/domain"
)

// ErrOwnerInvitation is returned when an invitation would grant the agency
// owner role. Ownership is only established by provisioning the agency.
var ErrOwnerInvitation = errors.New("invitation grants the agency owner role")

// storeError passes domain errors through and wraps everything else as a
// PersistenceError.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, ErrOwnerInvitation):
		return err
	}
	return domain.PersistenceError{Op: op, Err: err}
}
