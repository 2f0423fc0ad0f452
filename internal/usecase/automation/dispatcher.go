package automation

import (
	"context"
	"fmt"
	"log/slog"

	domauto "rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/shared"
)

// Dispatcher evaluates the enabled rules of a trigger and queues the actions of every match.
type Dispatcher struct {
	uow   shared.UnitOfWork
	queue shared.JobQueue
}

func NewDispatcher(uow shared.UnitOfWork, queue shared.JobQueue) *Dispatcher {
	return &Dispatcher{uow: uow, queue: queue}
}

// Trigger never fails as a whole: a broken rule is reported in Errors and the rest still run.
func (d *Dispatcher) Trigger(ctx context.Context, trigger string, data map[string]any) shared.TriggerResult {
	result := shared.TriggerResult{Errors: []string{}}

	rules, err := d.uow.CommandReads().EnabledAutomationsByTrigger(ctx, trigger)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load automations", "trigger", trigger, "error", err.Error())
		result.Errors = append(result.Errors, fmt.Sprintf("load automations: %v", err))
		return result
	}

	for _, rule := range rules {
		matched, err := d.run(ctx, rule, data)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rule.Name(), err))
			continue
		}
		if matched {
			result.Triggered++
		}
	}

	slog.DebugContext(ctx, "automation trigger evaluated",
		"trigger", trigger,
		"rules", len(rules),
		"triggered", result.Triggered,
		"errors", len(result.Errors))
	return result
}

func (d *Dispatcher) run(ctx context.Context, rule *domauto.Rule, data map[string]any) (bool, error) {
	compiled, err := rule.Compile()
	if err != nil {
		return false, err
	}
	if !compiled.Conditions.Matches(data) {
		return false, nil
	}
	for _, action := range compiled.Actions {
		job := action.Job(data)
		if err := d.queue.Enqueue(ctx, job.Type, job.Payload); err != nil {
			return false, errs.Wrapf(err, "enqueue %s", job.Type)
		}
	}
	return true, nil
}
