package readstore

import (
	"context"

	"rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/repository/converter"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/pgconv"
	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
)

type AutomationReadQueries interface {
	GetAutomationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Automations, error)
	ListAutomations(ctx context.Context, db sqlc.DBTX) ([]sqlc.Automations, error)
	ListEnabledAutomationsByTrigger(ctx context.Context, db sqlc.DBTX, trigger string) ([]sqlc.Automations, error)
}

type AutomationReadStore struct {
	queries AutomationReadQueries
	db      sqlc.DBTX
}

func NewAutomationReadStore(queries AutomationReadQueries, db sqlc.DBTX) *AutomationReadStore {
	return &AutomationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *AutomationReadStore) Aggregate(ctx context.Context, id uuid.UUID) (*automation.Rule, error) {
	row, err := r.queries.GetAutomationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("automation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find automation by ID", err)
	}
	rule, err := converter.AutomationFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode automation", err)
	}
	return rule, nil
}

// EnabledByTrigger returns enabled rules for trigger in creation order.
func (r *AutomationReadStore) EnabledByTrigger(ctx context.Context, trigger string) ([]*automation.Rule, error) {
	rows, err := r.queries.ListEnabledAutomationsByTrigger(ctx, r.db, trigger)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list automations by trigger", err)
	}
	return decodeRules(rows)
}

func (r *AutomationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AutomationView, error) {
	rule, err := r.Aggregate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAutomationView(rule), nil
}

func (r *AutomationReadStore) List(ctx context.Context) ([]*queries.AutomationView, error) {
	rows, err := r.queries.ListAutomations(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list automations", err)
	}
	rules, err := decodeRules(rows)
	if err != nil {
		return nil, err
	}
	views := make([]*queries.AutomationView, len(rules))
	for i, rule := range rules {
		views[i] = toAutomationView(rule)
	}
	return views, nil
}

func decodeRules(rows []sqlc.Automations) ([]*automation.Rule, error) {
	rules := make([]*automation.Rule, 0, len(rows))
	for _, row := range rows {
		rule, err := converter.AutomationFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode automation "+row.Name, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func toAutomationView(rule *automation.Rule) *queries.AutomationView {
	actions := make([]queries.ActionView, len(rule.Actions()))
	for i, a := range rule.Actions() {
		actions[i] = queries.ActionView{Type: a.Type, Params: a.Params}
	}
	conditions := rule.Conditions()
	if conditions == nil {
		conditions = map[string]any{}
	}
	return &queries.AutomationView{
		ID:         rule.ID(),
		Name:       rule.Name(),
		Trigger:    rule.Trigger(),
		Conditions: conditions,
		Actions:    actions,
		Enabled:    rule.Enabled(),
		CreatedAt:  rule.CreatedAt(),
		UpdatedAt:  rule.UpdatedAt(),
	}
}
