package commands

import (
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound     = errs.NotFound("booking does not exist")
	ErrGuestNotFound       = errs.NotFound("guest does not exist")
	ErrPropertyNotFound    = errs.NotFound("property does not exist")
	ErrUnitNotFound        = errs.NotFound("unit does not exist")
	ErrTaskNotFound        = errs.NotFound("task does not exist")
	ErrFinanceNotFound     = errs.NotFound("finance record does not exist")
	ErrAutomationNotFound  = errs.NotFound("automation does not exist")
	ErrUnsupportedArchive  = errs.Validation("permanent delete supports bookings, guests and properties only")
	ErrTaskNotAssigned     = errs.Forbidden("task is assigned to someone else")
	ErrDocumentRequired    = errs.Validation("document file is required")
	ErrDuplicateCode       = errs.Conflict("code is already in use")
	ErrDuplicateReference  = errs.Conflict("booking reference is already taken")
	ErrMalformedRuleImport = errs.Validation("automation import is not valid YAML")
)

// found turns a repository NOT_FOUND into the usecase sentinel and passes anything else through.
func found(err error, sentinel error, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Wrapf(sentinel, "%s", id)
	}
	return err
}

// duplicate maps a unique violation on insert to a Conflict.
func duplicate(err error, sentinel error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return errs.Wrapf(sentinel, "%v", err)
	}
	return err
}

func isNotFound(err error) bool {
	return infra.IsKind(err, infra.KindNotFound)
}
