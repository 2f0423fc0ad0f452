package task

import "rental-backoffice/internal/pkg/errs"

var (
	ErrAlreadyResolved    = errs.BusinessRule("task is already resolved")
	ErrInvalidStatus      = errs.Validation("invalid task status")
	ErrInvalidPriority    = errs.Validation("invalid maintenance priority")
	ErrInvalidType        = errs.Validation("invalid maintenance type")
	ErrTitleRequired      = errs.Validation("maintenance title is required")
	ErrMissingSchedule    = errs.Validation("scheduled date is required")
	ErrNegativeCost       = errs.Validation("cost must not be negative")
	ErrResolveViaEndpoint = errs.Validation("use the resolve endpoint to complete a task")
)
