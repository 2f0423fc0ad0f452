package request

import (
	"rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/usecase/commands"
)

type AutomationRequest struct {
	Name       string                 `json:"name" binding:"required,max=200"`
	Trigger    string                 `json:"trigger" binding:"required"`
	Conditions map[string]any         `json:"conditions"`
	Actions    []automation.RawAction `json:"actions" binding:"required,min=1"`
	Enabled    *bool                  `json:"enabled"`
}

func (r AutomationRequest) ToInput() commands.AutomationInput {
	return commands.AutomationInput(r)
}

type TriggerAutomationRequest struct {
	Trigger string         `json:"trigger" binding:"required"`
	Data    map[string]any `json:"data"`
}
