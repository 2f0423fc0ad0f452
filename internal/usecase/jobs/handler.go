package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domauto "rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/config"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUnknownJob       = errs.Validation("unknown job type")
	ErrMalformedPayload = errs.Validation("malformed job payload")
)

// Handler performs queued automation actions. Task jobs go through the task commands
// as the system actor; email jobs are written to the notification outbox for the mailer.
type Handler struct {
	uow       shared.UnitOfWork
	tasks     commands.TaskCommands
	clock     clock.Clock
	lifecycle config.LifecycleConfig
}

func NewHandler(uow shared.UnitOfWork, tasks commands.TaskCommands, clk clock.Clock, lifecycle config.LifecycleConfig) *Handler {
	return &Handler{uow: uow, tasks: tasks, clock: clk, lifecycle: lifecycle}
}

func (h *Handler) Handle(ctx context.Context, job *shared.QueuedJob) error {
	switch domauto.ActionType(job.Type) {
	case domauto.ActionCreateCleaningTask:
		return h.createCleaning(ctx, job.Payload)
	case domauto.ActionCreateMaintenanceReminder:
		return h.createMaintenanceReminder(ctx, job.Payload)
	case domauto.ActionSendEmail, domauto.ActionSendCheckinEmail, domauto.ActionSendCheckoutEmail:
		return h.queueEmail(ctx, job)
	}
	return errs.Wrapf(ErrUnknownJob, "%q", job.Type)
}

func (h *Handler) createCleaning(ctx context.Context, payload map[string]any) error {
	propertyID, err := uuidField(payload, "propertyId")
	if err != nil {
		return err
	}
	if propertyID == nil {
		return errs.Wrap(ErrMalformedPayload, "propertyId is required for a cleaning task")
	}
	unitID, err := uuidField(payload, "unitId")
	if err != nil {
		return err
	}
	bookingID, err := uuidField(payload, "bookingId")
	if err != nil {
		return err
	}
	assigneeID, err := uuidField(payload, "assigneeId")
	if err != nil {
		return err
	}
	date, err := dateField(payload, "scheduledDate")
	if err != nil {
		return err
	}
	if date == nil {
		today := clock.Today(h.clock, h.lifecycle.Location())
		date = &today
	}

	id, err := h.tasks.CreateCleaning(ctx, shared.SystemActor, commands.CreateCleaningInput{
		PropertyID:    *propertyID,
		UnitID:        unitID,
		BookingID:     bookingID,
		ScheduledDate: *date,
		AssigneeID:    assigneeID,
		Notes:         stringField(payload, "notes"),
	})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "cleaning task created by automation", "task_id", id.String(), "property_id", propertyID.String())
	return nil
}

// createMaintenanceReminder targets one property, or every active property when none is named.
func (h *Handler) createMaintenanceReminder(ctx context.Context, payload map[string]any) error {
	propertyID, err := uuidField(payload, "propertyId")
	if err != nil {
		return err
	}
	unitID, err := uuidField(payload, "unitId")
	if err != nil {
		return err
	}
	due, err := dateField(payload, "dueDate")
	if err != nil {
		return err
	}

	targets := []uuid.UUID{}
	if propertyID != nil {
		targets = append(targets, *propertyID)
	} else {
		active, err := h.uow.CommandReads().ActiveProperties(ctx)
		if err != nil {
			return err
		}
		for _, p := range active {
			targets = append(targets, p.ID())
		}
		unitID = nil
	}

	for _, target := range targets {
		_, err := h.tasks.CreateMaintenance(ctx, shared.SystemActor, commands.CreateMaintenanceInput{
			PropertyID:  target,
			UnitID:      unitID,
			Title:       stringField(payload, "title"),
			Description: stringField(payload, "description"),
			Priority:    stringField(payload, "priority"),
			Type:        stringField(payload, "maintenanceType"),
			DueDate:     due,
		})
		if err != nil {
			return errs.Wrapf(err, "property %s", target)
		}
	}
	slog.InfoContext(ctx, "maintenance reminders created by automation", "count", len(targets))
	return nil
}

func (h *Handler) queueEmail(ctx context.Context, job *shared.QueuedJob) error {
	body, err := json.Marshal(job.Payload)
	if err != nil {
		return errs.Wrap(err, "encode email payload")
	}
	topic := stringField(job.Payload, "template")
	if topic == "" {
		topic = job.Type
	}
	return h.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().CreateJob(ctx, tx.DB(), job.Type, topic, body, h.clock.Now())
	})
}

func stringField(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

func uuidField(payload map[string]any, key string) (*uuid.UUID, error) {
	s := stringField(payload, key)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, errs.Wrapf(ErrMalformedPayload, "%s: %v", key, err)
	}
	return &id, nil
}

func dateField(payload map[string]any, key string) (*time.Time, error) {
	s := stringField(payload, key)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d := clock.DateOf(t)
			return &d, nil
		}
	}
	return nil, errs.Wrapf(ErrMalformedPayload, "%s: %q is not a date", key, s)
}
