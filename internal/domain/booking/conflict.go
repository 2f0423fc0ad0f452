package booking

import (
	"rental-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookingConflict = errs.Conflict("booking dates overlap an existing booking")

type ConflictResult struct {
	HasConflict bool
	Conflicts   []*Booking
}

// FindConflicts filters existing to the bookings whose stay overlaps candidate.
// The three overlap shapes (checkin inside, checkout inside, full containment)
// all reduce to StayPeriod.Overlaps; back-to-back stays never conflict.
func FindConflicts(candidate StayPeriod, existing []*Booking, exclude *uuid.UUID) ConflictResult {
	var conflicts []*Booking
	for _, b := range existing {
		if exclude != nil && b.id == *exclude {
			continue
		}
		if b.period.Overlaps(candidate) {
			conflicts = append(conflicts, b)
		}
	}
	return ConflictResult{HasConflict: len(conflicts) > 0, Conflicts: conflicts}
}

func (r ConflictResult) References() []string {
	refs := make([]string, 0, len(r.Conflicts))
	for _, b := range r.Conflicts {
		refs = append(refs, b.reference)
	}
	return refs
}

// Err returns ErrBookingConflict carrying the clashing references, or nil.
func (r ConflictResult) Err() error {
	if !r.HasConflict {
		return nil
	}
	return errs.Wrapf(ErrBookingConflict, "conflicts with %v", r.References())
}
