package response

import (
	"time"

	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AutomationActionResponse struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

type AutomationResponse struct {
	ID         uuid.UUID                  `json:"id"`
	Name       string                     `json:"name"`
	Trigger    string                     `json:"trigger"`
	Conditions map[string]any             `json:"conditions"`
	Actions    []AutomationActionResponse `json:"actions"`
	Enabled    bool                       `json:"enabled"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

func FromAutomationView(v *queries.AutomationView) (*AutomationResponse, error) {
	res := &AutomationResponse{}
	if err := copier.CopyWithOption(res, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if res.Conditions == nil {
		res.Conditions = map[string]any{}
	}
	return res, nil
}

func FromAutomationViews(views []*queries.AutomationView) ([]*AutomationResponse, error) {
	out := make([]*AutomationResponse, 0, len(views))
	for _, v := range views {
		res, err := FromAutomationView(v)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

type ImportAutomationsResponse struct {
	IDs   []uuid.UUID `json:"ids"`
	Count int         `json:"count"`
}
