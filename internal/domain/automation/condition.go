package automation

import (
	"sort"
	"strings"

	"rental-backoffice/internal/pkg/errs"
)

var ErrMalformedCondition = errs.Validation("malformed condition")

type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// Conditions are AND-ed. An empty set matches every event.
type Conditions []Condition

// ParseConditions accepts field -> literal (equals) or field -> {operator, value}.
func ParseConditions(raw map[string]any) (Conditions, error) {
	fields := make([]string, 0, len(raw))
	for f := range raw {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make(Conditions, 0, len(raw))
	for _, field := range fields {
		if strings.TrimSpace(field) == "" {
			return nil, errs.Wrap(ErrMalformedCondition, "empty field name")
		}
		c, err := parseCondition(field, raw[field])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseCondition(field string, raw any) (Condition, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Condition{Field: field, Operator: OpEquals, Value: raw}, nil
	}
	rawOp, hasOp := m["operator"]
	if !hasOp {
		// a nested object without an operator is an object literal
		return Condition{Field: field, Operator: OpEquals, Value: raw}, nil
	}
	opName, ok := rawOp.(string)
	if !ok {
		return Condition{}, errs.Wrapf(ErrMalformedCondition, "field %q: operator must be a string", field)
	}
	op, err := ParseOperator(opName)
	if err != nil {
		return Condition{}, errs.Wrapf(err, "field %q", field)
	}
	return Condition{Field: field, Operator: op, Value: m["value"]}, nil
}

func (c Condition) Matches(data map[string]any) bool {
	v, present := lookup(data, c.Field)
	return c.Operator.Apply(v, present, c.Value)
}

func (cs Conditions) Matches(data map[string]any) bool {
	for _, c := range cs {
		if !c.Matches(data) {
			return false
		}
	}
	return true
}

// lookup resolves dotted paths such as "guest.nationality".
func lookup(data map[string]any, path string) (any, bool) {
	if v, ok := data[path]; ok {
		return v, true
	}
	var cur any = data
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
