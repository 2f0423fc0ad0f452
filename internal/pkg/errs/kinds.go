package errs

import cr "github.com/cockroachdb/errors"

type Kind string

const (
	KindUnknown      Kind = "internal"
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindForbidden    Kind = "forbidden"
	KindBusinessRule Kind = "business_rule"
)

// Kind markers. Domain and usecase errors are marked with exactly one of these.
var (
	ErrNotFound     = cr.New("not found")
	ErrValidation   = cr.New("validation failure")
	ErrConflict     = cr.New("conflict")
	ErrForbidden    = cr.New("forbidden")
	ErrBusinessRule = cr.New("business rule rejection")
)

var kindMarks = []struct {
	kind Kind
	mark error
}{
	{KindNotFound, ErrNotFound},
	{KindValidation, ErrValidation},
	{KindConflict, ErrConflict},
	{KindForbidden, ErrForbidden},
	{KindBusinessRule, ErrBusinessRule},
}

func NotFound(msg string) error     { return cr.Mark(cr.New(msg), ErrNotFound) }
func Validation(msg string) error   { return cr.Mark(cr.New(msg), ErrValidation) }
func Conflict(msg string) error     { return cr.Mark(cr.New(msg), ErrConflict) }
func Forbidden(msg string) error    { return cr.Mark(cr.New(msg), ErrForbidden) }
func BusinessRule(msg string) error { return cr.Mark(cr.New(msg), ErrBusinessRule) }

func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, km := range kindMarks {
		if cr.Is(err, km.mark) {
			return km.kind
		}
	}
	return KindUnknown
}
