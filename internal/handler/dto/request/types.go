package request

import (
	"encoding/json"
	"strings"
	"time"

	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/errs"
)

var ErrInvalidDate = errs.Validation("dates must be YYYY-MM-DD or RFC 3339")

// Date accepts "2024-01-05" as well as a full RFC 3339 timestamp and keeps the calendar day.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errs.Wrap(ErrInvalidDate, err.Error())
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return clock.DateOf(t), nil
		}
	}
	return time.Time{}, errs.Wrapf(ErrInvalidDate, "%q", s)
}

func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// Optional tells an absent field (no change) from an explicit null (clear the value).
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Patch returns nil when the field was absent and a pointer to the new value otherwise.
func (o Optional[T]) Patch() **T {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}
