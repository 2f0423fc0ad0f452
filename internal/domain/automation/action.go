package automation

import (
	"maps"

	"rental-backoffice/internal/pkg/errs"
)

var ErrUnknownAction = errs.Validation("unknown automation action")

type ActionType string

const (
	ActionCreateCleaningTask        ActionType = "create_cleaning_task"
	ActionSendEmail                 ActionType = "send_email"
	ActionSendCheckinEmail          ActionType = "send_checkin_email"
	ActionSendCheckoutEmail         ActionType = "send_checkout_email"
	ActionCreateMaintenanceReminder ActionType = "create_maintenance_reminder"
)

// RawAction is the stored form of an action.
type RawAction struct {
	Type   string         `json:"type" yaml:"type"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// Job is what an action puts on the queue.
type Job struct {
	Type    string
	Payload map[string]any
}

// Action is implemented only by the built-in action types below.
type Action interface {
	Type() ActionType
	Job(eventData map[string]any) Job
	action()
}

type params map[string]any

func (params) action() {}

// merge overlays action params on event data; params win on collision.
func (p params) merge(eventData map[string]any) map[string]any {
	out := make(map[string]any, len(eventData)+len(p))
	maps.Copy(out, eventData)
	maps.Copy(out, p)
	return out
}

type CreateCleaningTask struct{ params }

func (CreateCleaningTask) Type() ActionType { return ActionCreateCleaningTask }

func (a CreateCleaningTask) Job(eventData map[string]any) Job {
	payload := a.merge(eventData)
	if _, ok := payload["scheduledDate"]; !ok {
		if d, ok := eventData["checkoutDate"]; ok {
			payload["scheduledDate"] = d
		} else if d, ok := eventData["date"]; ok {
			payload["scheduledDate"] = d
		}
	}
	return Job{Type: string(ActionCreateCleaningTask), Payload: payload}
}

type SendEmail struct{ params }

func (SendEmail) Type() ActionType { return ActionSendEmail }

func (a SendEmail) Job(eventData map[string]any) Job {
	return emailJob(ActionSendEmail, "generic", a.merge(eventData))
}

type SendCheckinEmail struct{ params }

func (SendCheckinEmail) Type() ActionType { return ActionSendCheckinEmail }

func (a SendCheckinEmail) Job(eventData map[string]any) Job {
	return emailJob(ActionSendCheckinEmail, "checkin", a.merge(eventData))
}

type SendCheckoutEmail struct{ params }

func (SendCheckoutEmail) Type() ActionType { return ActionSendCheckoutEmail }

func (a SendCheckoutEmail) Job(eventData map[string]any) Job {
	return emailJob(ActionSendCheckoutEmail, "checkout", a.merge(eventData))
}

type CreateMaintenanceReminder struct{ params }

func (CreateMaintenanceReminder) Type() ActionType { return ActionCreateMaintenanceReminder }

func (a CreateMaintenanceReminder) Job(eventData map[string]any) Job {
	payload := a.merge(eventData)
	if _, ok := payload["title"]; !ok {
		payload["title"] = "Scheduled maintenance check"
	}
	return Job{Type: string(ActionCreateMaintenanceReminder), Payload: payload}
}

func emailJob(t ActionType, template string, payload map[string]any) Job {
	if _, ok := payload["template"]; !ok {
		payload["template"] = template
	}
	return Job{Type: string(t), Payload: payload}
}

func ParseAction(raw RawAction) (Action, error) {
	p := params(raw.Params)
	switch ActionType(raw.Type) {
	case ActionCreateCleaningTask:
		return CreateCleaningTask{p}, nil
	case ActionSendEmail:
		return SendEmail{p}, nil
	case ActionSendCheckinEmail:
		return SendCheckinEmail{p}, nil
	case ActionSendCheckoutEmail:
		return SendCheckoutEmail{p}, nil
	case ActionCreateMaintenanceReminder:
		return CreateMaintenanceReminder{p}, nil
	}
	return nil, errs.Wrapf(ErrUnknownAction, "%q", raw.Type)
}

func ParseActions(raws []RawAction) ([]Action, error) {
	out := make([]Action, 0, len(raws))
	for i, raw := range raws {
		a, err := ParseAction(raw)
		if err != nil {
			return nil, errs.Wrapf(err, "action %d", i)
		}
		out = append(out, a)
	}
	return out, nil
}
