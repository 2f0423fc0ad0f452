package automation

import (
	"strings"
	"time"

	"rental-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNameRequired    = errs.Validation("automation name is required")
	ErrTriggerRequired = errs.Validation("automation trigger is required")
	ErrNoActions       = errs.Validation("automation needs at least one action")
)

// Recurring triggers raised by the scheduler. Booking triggers live in the booking package.
const (
	TriggerScheduledDaily   = "scheduled.daily"
	TriggerScheduledMonthly = "scheduled.monthly"
)

type Rule struct {
	id         uuid.UUID
	name       string
	trigger    string
	conditions map[string]any
	actions    []RawAction
	enabled    bool
	createdAt  time.Time
	updatedAt  time.Time
}

type RuleParams struct {
	Name       string
	Trigger    string
	Conditions map[string]any
	Actions    []RawAction
	Enabled    bool
}

func (p *RuleParams) normalize() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Trigger = strings.TrimSpace(p.Trigger)
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Trigger == "" {
		return ErrTriggerRequired
	}
	if len(p.Actions) == 0 {
		return ErrNoActions
	}
	if p.Conditions == nil {
		p.Conditions = map[string]any{}
	}
	if _, err := ParseConditions(p.Conditions); err != nil {
		return err
	}
	if _, err := ParseActions(p.Actions); err != nil {
		return err
	}
	return nil
}

func NewRule(p RuleParams, now time.Time) (*Rule, error) {
	if err := p.normalize(); err != nil {
		return nil, err
	}
	return &Rule{
		id:         uuid.New(),
		name:       p.Name,
		trigger:    p.Trigger,
		conditions: p.Conditions,
		actions:    p.Actions,
		enabled:    p.Enabled,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructRule does not validate; stored rules are compiled at evaluation.
func ReconstructRule(id uuid.UUID, p RuleParams, createdAt, updatedAt time.Time) *Rule {
	return &Rule{
		id:         id,
		name:       p.Name,
		trigger:    p.Trigger,
		conditions: p.Conditions,
		actions:    p.Actions,
		enabled:    p.Enabled,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Rule) ID() uuid.UUID              { return r.id }
func (r *Rule) Name() string               { return r.name }
func (r *Rule) Trigger() string            { return r.trigger }
func (r *Rule) Conditions() map[string]any { return r.conditions }
func (r *Rule) Actions() []RawAction       { return r.actions }
func (r *Rule) Enabled() bool              { return r.enabled }
func (r *Rule) CreatedAt() time.Time       { return r.createdAt }
func (r *Rule) UpdatedAt() time.Time       { return r.updatedAt }

func (r *Rule) Replace(p RuleParams, now time.Time) error {
	if err := p.normalize(); err != nil {
		return err
	}
	r.name = p.Name
	r.trigger = p.Trigger
	r.conditions = p.Conditions
	r.actions = p.Actions
	r.enabled = p.Enabled
	r.updatedAt = now
	return nil
}

type Compiled struct {
	Conditions Conditions
	Actions    []Action
}

func (r *Rule) Compile() (Compiled, error) {
	conds, err := ParseConditions(r.conditions)
	if err != nil {
		return Compiled{}, err
	}
	actions, err := ParseActions(r.actions)
	if err != nil {
		return Compiled{}, err
	}
	return Compiled{Conditions: conds, Actions: actions}, nil
}
