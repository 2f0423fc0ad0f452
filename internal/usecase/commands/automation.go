package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type AutomationInput struct {
	Name       string                 `yaml:"name"`
	Trigger    string                 `yaml:"trigger"`
	Conditions map[string]any         `yaml:"conditions"`
	Actions    []automation.RawAction `yaml:"actions"`
	Enabled    *bool                  `yaml:"enabled"`
}

func (in AutomationInput) params() automation.RuleParams {
	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	return automation.RuleParams{
		Name:       in.Name,
		Trigger:    in.Trigger,
		Conditions: in.Conditions,
		Actions:    in.Actions,
		Enabled:    enabled,
	}
}

// automationDocument is the import file: either a bare list or {automations: [...]}.
type automationDocument struct {
	Automations []AutomationInput `yaml:"automations"`
}

type AutomationCommands interface {
	Create(ctx context.Context, actor shared.Actor, in AutomationInput) (uuid.UUID, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in AutomationInput) error
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	Trigger(ctx context.Context, actor shared.Actor, trigger string, data map[string]any) (shared.TriggerResult, error)
	Import(ctx context.Context, actor shared.Actor, r io.Reader) ([]uuid.UUID, error)
}

type automationUseCaseImpl struct {
	uow        shared.UnitOfWork
	clock      clock.Clock
	dispatcher shared.RuleDispatcher
}

func NewAutomationUseCase(uow shared.UnitOfWork, clk clock.Clock, dispatcher shared.RuleDispatcher) AutomationCommands {
	return &automationUseCaseImpl{uow: uow, clock: clk, dispatcher: dispatcher}
}

func (uc *automationUseCaseImpl) Create(ctx context.Context, actor shared.Actor, in AutomationInput) (uuid.UUID, error) {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return uuid.Nil, err
	}
	rule, err := automation.NewRule(in.params(), uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Automations().Create(ctx, tx.DB(), rule)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return rule.ID(), nil
}

func (uc *automationUseCaseImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in AutomationInput) error {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return err
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rule, err := tx.Reads().AutomationByID(ctx, id)
		if err != nil {
			return found(err, ErrAutomationNotFound, id)
		}
		if err := rule.Replace(in.params(), uc.clock.Now()); err != nil {
			return err
		}
		return found(tx.Automations().Update(ctx, tx.DB(), rule), ErrAutomationNotFound, id)
	})
}

func (uc *automationUseCaseImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return err
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return found(tx.Automations().Delete(ctx, tx.DB(), id), ErrAutomationNotFound, id)
	})
}

// Trigger runs the dispatcher synchronously so the caller sees the per-rule outcome.
func (uc *automationUseCaseImpl) Trigger(ctx context.Context, actor shared.Actor, trigger string, data map[string]any) (shared.TriggerResult, error) {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return shared.TriggerResult{}, err
	}
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return shared.TriggerResult{}, automation.ErrTriggerRequired
	}
	if data == nil {
		data = map[string]any{}
	}
	return uc.dispatcher.Trigger(ctx, trigger, data), nil
}

// Import creates every rule of a YAML document in one transaction; one invalid rule rejects the file.
func (uc *automationUseCaseImpl) Import(ctx context.Context, actor shared.Actor, r io.Reader) ([]uuid.UUID, error) {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return nil, err
	}
	inputs, err := decodeAutomations(r)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	rules := make([]*automation.Rule, 0, len(inputs))
	for i, in := range inputs {
		rule, err := automation.NewRule(in.params(), now)
		if err != nil {
			return nil, errs.Wrapf(err, "automation %d (%s)", i+1, in.Name)
		}
		rules = append(rules, rule)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, rule := range rules {
			if err := tx.Automations().Create(ctx, tx.DB(), rule); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rules))
	for _, rule := range rules {
		ids = append(ids, rule.ID())
	}
	return ids, nil
}

func decodeAutomations(r io.Reader) ([]AutomationInput, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(err, "read automation import")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errs.Wrap(ErrMalformedRuleImport, "empty document")
	}

	var list []AutomationInput
	if err := yaml.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return nil, errs.Wrap(ErrMalformedRuleImport, "no automations")
		}
		return list, nil
	}

	var doc automationDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, errs.Wrapf(ErrMalformedRuleImport, "%s", strings.Join(typeErr.Errors, "; "))
		}
		return nil, errs.Wrapf(ErrMalformedRuleImport, "%v", err)
	}
	if len(doc.Automations) == 0 {
		return nil, errs.Wrap(ErrMalformedRuleImport, "no automations")
	}
	return doc.Automations, nil
}
