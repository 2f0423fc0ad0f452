package automation

import (
	"encoding/json"
	"math/big"
	"reflect"
	"strings"
	"time"

	"rental-backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrUnknownOperator = errs.Validation("unknown condition operator")

type Operator string

const (
	OpEquals             Operator = "equals"
	OpNotEquals          Operator = "notEquals"
	OpGreaterThan        Operator = "greaterThan"
	OpLessThan           Operator = "lessThan"
	OpGreaterThanOrEqual Operator = "greaterThanOrEqual"
	OpLessThanOrEqual    Operator = "lessThanOrEqual"
	OpContains           Operator = "contains"
	OpIn                 Operator = "in"
	OpNotIn              Operator = "notIn"
	OpExists             Operator = "exists"
	OpNotExists          Operator = "notExists"
)

func ParseOperator(s string) (Operator, error) {
	switch op := Operator(s); op {
	case OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpGreaterThanOrEqual,
		OpLessThanOrEqual, OpContains, OpIn, OpNotIn, OpExists, OpNotExists:
		return op, nil
	}
	return "", errs.Wrapf(ErrUnknownOperator, "%q", s)
}

// Apply evaluates the operator against the field value. present is false when
// the event carries no such field.
func (op Operator) Apply(field any, present bool, value any) bool {
	switch op {
	case OpExists:
		return present && field != nil
	case OpNotExists:
		return !present || field == nil
	case OpEquals:
		return present && valuesEqual(field, value)
	case OpNotEquals:
		return !present || !valuesEqual(field, value)
	case OpGreaterThan:
		c, ok := compare(field, value)
		return present && ok && c > 0
	case OpLessThan:
		c, ok := compare(field, value)
		return present && ok && c < 0
	case OpGreaterThanOrEqual:
		c, ok := compare(field, value)
		return present && ok && c >= 0
	case OpLessThanOrEqual:
		c, ok := compare(field, value)
		return present && ok && c <= 0
	case OpContains:
		s, ok1 := field.(string)
		sub, ok2 := value.(string)
		return present && ok1 && ok2 && strings.Contains(s, sub)
	case OpIn:
		list, ok := asList(value)
		return present && ok && listHas(list, field)
	case OpNotIn:
		list, ok := asList(value)
		return ok && (!present || !listHas(list, field))
	}
	return false
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	sa, aIsString := a.(string)
	sb, bIsString := b.(string)
	if aIsString && bIsString {
		return sa == sb
	}
	// a number on either side makes the comparison numeric
	if da, ok := toDecimal(a); ok {
		if db, ok := toDecimal(b); ok {
			return da.Equal(db)
		}
	}
	if aIsString || bIsString {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// compare orders numbers numerically, dates chronologically and other strings
// lexically. ok is false for values that cannot be ordered against each other.
func compare(a, b any) (int, bool) {
	if da, ok := toDecimal(a); ok {
		if db, ok := toDecimal(b); ok {
			return da.Cmp(db), true
		}
		return 0, false
	}
	if ta, ok := toTime(a); ok {
		if tb, ok := toTime(b); ok {
			return ta.Compare(tb), true
		}
		return 0, false
	}
	sa, ok1 := a.(string)
	sb, ok2 := b.(string)
	if ok1 && ok2 {
		return strings.Compare(sa, sb), true
	}
	return 0, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(n)), 0), true
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case decimal.Decimal:
		return n, true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func listHas(list []any, v any) bool {
	for _, item := range list {
		if valuesEqual(v, item) {
			return true
		}
	}
	return false
}
