package queries

import "rental-backoffice/internal/pkg/errs"

var (
	ErrInvalidCursor   = errs.Validation("invalid cursor")
	ErrBookingNotFound = errs.NotFound("booking does not exist")
	ErrGuestNotFound   = errs.NotFound("guest does not exist")
	ErrPropertyMissing = errs.NotFound("property does not exist")
	ErrTaskNotFound    = errs.NotFound("task does not exist")
	ErrRuleNotFound    = errs.NotFound("automation does not exist")
	ErrUserNotFound    = errs.NotFound("user does not exist")
	ErrUserInactive    = errs.Forbidden("user is inactive")
)
