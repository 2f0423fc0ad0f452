package converter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/pgconv"
)

func AutomationToRow(r *automation.Rule) (sqlc.Automations, error) {
	conditions, err := json.Marshal(r.Conditions())
	if err != nil {
		return sqlc.Automations{}, fmt.Errorf("encode conditions: %w", err)
	}
	actions, err := json.Marshal(r.Actions())
	if err != nil {
		return sqlc.Automations{}, fmt.Errorf("encode actions: %w", err)
	}
	return sqlc.Automations{
		ID:         r.ID(),
		Name:       r.Name(),
		Trigger:    r.Trigger(),
		Conditions: conditions,
		Actions:    actions,
		Enabled:    r.Enabled(),
		CreatedAt:  pgconv.TimeToPgtype(r.CreatedAt()),
		UpdatedAt:  pgconv.TimeToPgtype(r.UpdatedAt()),
	}, nil
}

// AutomationFromRow keeps numbers as json.Number so comparisons stay exact.
func AutomationFromRow(row sqlc.Automations) (*automation.Rule, error) {
	conditions := map[string]any{}
	if len(row.Conditions) > 0 {
		dec := json.NewDecoder(bytes.NewReader(row.Conditions))
		dec.UseNumber()
		if err := dec.Decode(&conditions); err != nil {
			return nil, fmt.Errorf("decode conditions of %s: %w", row.ID, err)
		}
	}
	var actions []automation.RawAction
	if len(row.Actions) > 0 {
		dec := json.NewDecoder(bytes.NewReader(row.Actions))
		dec.UseNumber()
		if err := dec.Decode(&actions); err != nil {
			return nil, fmt.Errorf("decode actions of %s: %w", row.ID, err)
		}
	}
	return automation.ReconstructRule(row.ID, automation.RuleParams{
		Name:       row.Name,
		Trigger:    row.Trigger,
		Conditions: conditions,
		Actions:    actions,
		Enabled:    row.Enabled,
	}, pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt)), nil
}
