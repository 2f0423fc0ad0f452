//go:build unit

package automation_test

import (
	"testing"

	"rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var event = map[string]any{
	"paymentStatus": "paid",
	"channel":       "airbnb",
	"totalAmount":   "400.00",
	"nights":        4,
	"checkinDate":   "2024-01-01",
	"notes":         "late arrival, needs crib",
	"unitId":        nil,
	"guest":         map[string]any{"nationality": "JP"},
}

func TestConditions(t *testing.T) {
	cases := []struct {
		name  string
		cond  map[string]any
		match bool
	}{
		{name: "empty matches everything", cond: map[string]any{}, match: true},
		{name: "literal equals", cond: map[string]any{"paymentStatus": "paid"}, match: true},
		{name: "literal mismatch", cond: map[string]any{"paymentStatus": "pending"}, match: false},
		{name: "implicit and", cond: map[string]any{"paymentStatus": "paid", "channel": "direct"}, match: false},
		{name: "equals coerces numeric strings", cond: map[string]any{"totalAmount": op("equals", 400.0)}, match: true},
		{name: "two strings compare exactly", cond: map[string]any{"totalAmount": "400"}, match: false},
		{name: "same string matches", cond: map[string]any{"totalAmount": "400.00"}, match: true},
		{name: "numeric string against a number", cond: map[string]any{"nights": op("equals", "4")}, match: true},
		{name: "notEquals", cond: map[string]any{"channel": op("notEquals", "direct")}, match: true},
		{name: "greaterThan numeric", cond: map[string]any{"totalAmount": op("greaterThan", 399.99)}, match: true},
		{name: "greaterThan equal value", cond: map[string]any{"nights": op("greaterThan", 4)}, match: false},
		{name: "greaterThanOrEqual", cond: map[string]any{"nights": op("greaterThanOrEqual", 4)}, match: true},
		{name: "lessThan", cond: map[string]any{"nights": op("lessThan", 7.0)}, match: true},
		{name: "lessThanOrEqual", cond: map[string]any{"nights": op("lessThanOrEqual", 3)}, match: false},
		{name: "dates compare chronologically", cond: map[string]any{"checkinDate": op("lessThan", "2024-02-01")}, match: true},
		{name: "incomparable values never match", cond: map[string]any{"channel": op("greaterThan", 3)}, match: false},
		{name: "contains", cond: map[string]any{"notes": op("contains", "crib")}, match: true},
		{name: "contains only on strings", cond: map[string]any{"nights": op("contains", "4")}, match: false},
		{name: "in", cond: map[string]any{"channel": op("in", []any{"airbnb", "booking_com"})}, match: true},
		{name: "in with non list", cond: map[string]any{"channel": op("in", "airbnb")}, match: false},
		{name: "notIn", cond: map[string]any{"channel": op("notIn", []any{"direct"})}, match: true},
		{name: "notIn when listed", cond: map[string]any{"channel": op("notIn", []any{"airbnb"})}, match: false},
		{name: "exists", cond: map[string]any{"channel": op("exists", nil)}, match: true},
		{name: "exists is false for null", cond: map[string]any{"unitId": op("exists", nil)}, match: false},
		{name: "notExists for missing field", cond: map[string]any{"depositAmount": op("notExists", nil)}, match: true},
		{name: "missing field fails equals", cond: map[string]any{"depositAmount": "100"}, match: false},
		{name: "dotted path", cond: map[string]any{"guest.nationality": "JP"}, match: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			conds, err := automation.ParseConditions(c.cond)
			require.NoError(t, err)
			assert.Equal(t, c.match, conds.Matches(event))
		})
	}
}

func TestParseConditionsErrors(t *testing.T) {
	_, err := automation.ParseConditions(map[string]any{"channel": op("startsWith", "air")})
	require.ErrorIs(t, err, automation.ErrUnknownOperator)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	_, err = automation.ParseConditions(map[string]any{"channel": map[string]any{"operator": 3}})
	require.ErrorIs(t, err, automation.ErrMalformedCondition)
}

func op(name string, value any) map[string]any {
	return map[string]any{"operator": name, "value": value}
}
