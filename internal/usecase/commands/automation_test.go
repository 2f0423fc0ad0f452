//go:build unit

package commands_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domauto "rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/automation"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AutomationCommandsTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memstore.Store
	queue *memstore.Queue
	uc    commands.AutomationCommands
}

func TestAutomationCommandsSuite(t *testing.T) {
	suite.Run(t, new(AutomationCommandsTestSuite))
}

func (s *AutomationCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.queue = memstore.NewQueue()
	clk := clock.NewMockClock(time.Date(2024, time.February, 1, 7, 0, 0, 0, time.UTC))
	s.uc = commands.NewAutomationUseCase(s.store, clk, automation.NewDispatcher(s.store, s.queue))
}

func welcomeRule() commands.AutomationInput {
	return commands.AutomationInput{
		Name:       "Welcome paid guests",
		Trigger:    "booking.created",
		Conditions: map[string]any{"paymentStatus": "paid"},
		Actions:    []domauto.RawAction{{Type: "send_checkin_email"}},
	}
}

func (s *AutomationCommandsTestSuite) TestCRUD() {
	id, err := s.uc.Create(s.ctx, admin, welcomeRule())
	s.Require().NoError(err)

	rules := s.store.Rules()
	s.Require().Len(rules, 1)
	s.True(rules[0].Enabled())

	disabled := false
	in := welcomeRule()
	in.Enabled = &disabled
	in.Name = "Welcome guests"
	s.Require().NoError(s.uc.Update(s.ctx, admin, id, in))
	rules = s.store.Rules()
	s.Equal("Welcome guests", rules[0].Name())
	s.False(rules[0].Enabled())

	s.Require().NoError(s.uc.Delete(s.ctx, admin, id))
	s.Empty(s.store.Rules())

	err = s.uc.Delete(s.ctx, admin, id)
	s.True(errs.Is(err, commands.ErrAutomationNotFound))
}

func (s *AutomationCommandsTestSuite) TestCreateValidation() {
	tests := []struct {
		name   string
		mutate func(*commands.AutomationInput)
		errIs  error
	}{
		{"missing name", func(in *commands.AutomationInput) { in.Name = " " }, domauto.ErrNameRequired},
		{"missing trigger", func(in *commands.AutomationInput) { in.Trigger = "" }, domauto.ErrTriggerRequired},
		{"no actions", func(in *commands.AutomationInput) { in.Actions = nil }, domauto.ErrNoActions},
		{"unknown action", func(in *commands.AutomationInput) {
			in.Actions = []domauto.RawAction{{Type: "send_fax"}}
		}, domauto.ErrUnknownAction},
		{"unknown operator", func(in *commands.AutomationInput) {
			in.Conditions = map[string]any{"nights": map[string]any{"operator": "between", "value": 3}}
		}, nil},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			in := welcomeRule()
			tt.mutate(&in)
			_, err := s.uc.Create(s.ctx, admin, in)
			s.Require().Error(err)
			if tt.errIs != nil {
				s.True(errs.Is(err, tt.errIs), "got %v", err)
			}
			s.Equal(errs.KindValidation, errs.KindOf(err))
		})
	}

	s.Run("assistants cannot manage rules", func() {
		_, err := s.uc.Create(s.ctx, assistant, welcomeRule())
		s.Equal(errs.KindForbidden, errs.KindOf(err))
	})
}

func (s *AutomationCommandsTestSuite) TestImport() {
	s.Run("success: wrapped document", func() {
		s.SetupTest()
		doc := `
automations:
  - name: Checkout clean
    trigger: booking.checked_out
    actions:
      - type: create_cleaning_task
  - name: Monthly AC service
    trigger: scheduled.monthly
    enabled: false
    actions:
      - type: create_maintenance_reminder
        params:
          type: ac
`
		ids, err := s.uc.Import(s.ctx, admin, strings.NewReader(doc))
		s.Require().NoError(err)
		s.Len(ids, 2)
		s.Len(s.store.Rules(), 2)
	})

	s.Run("success: bare list", func() {
		s.SetupTest()
		doc := `
- name: Paid welcome
  trigger: booking.created
  conditions:
    paymentStatus: paid
  actions:
    - type: send_email
`
		ids, err := s.uc.Import(s.ctx, admin, strings.NewReader(doc))
		s.Require().NoError(err)
		s.Len(ids, 1)
	})

	s.Run("error: one invalid rule rejects the file", func() {
		s.SetupTest()
		doc := `
- name: Good
  trigger: booking.created
  actions: [{type: send_email}]
- name: Bad
  trigger: booking.created
  actions: [{type: teleport}]
`
		_, err := s.uc.Import(s.ctx, admin, strings.NewReader(doc))
		s.True(errs.Is(err, domauto.ErrUnknownAction))
		s.Contains(err.Error(), "automation 2 (Bad)")
		s.Empty(s.store.Rules())
	})

	s.Run("error: storage failure rolls back", func() {
		s.SetupTest()
		s.store.FailOn("automation.create", errors.New("disk full"))
		_, err := s.uc.Import(s.ctx, admin, strings.NewReader("- {name: A, trigger: t, actions: [{type: send_email}]}"))
		s.Require().Error(err)
		s.Empty(s.store.Rules())
	})

	for name, doc := range map[string]string{
		"empty":       "  \n",
		"no rules":    "automations: []",
		"not yaml":    "- name: [unterminated",
		"wrong shape": "automations: 42",
	} {
		s.Run("error: malformed "+name, func() {
			s.SetupTest()
			_, err := s.uc.Import(s.ctx, admin, strings.NewReader(doc))
			s.True(errs.Is(err, commands.ErrMalformedRuleImport), "got %v", err)
		})
	}
}

func (s *AutomationCommandsTestSuite) TestTrigger() {
	_, err := s.uc.Create(s.ctx, admin, welcomeRule())
	s.Require().NoError(err)

	s.Run("matching event queues the action", func() {
		res, err := s.uc.Trigger(s.ctx, admin, "booking.created", map[string]any{"paymentStatus": "paid", "bookingId": uuid.NewString()})
		s.Require().NoError(err)
		s.Equal(1, res.Triggered)
		s.Empty(res.Errors)
		s.Require().Len(s.queue.Jobs(), 1)
		s.Equal("send_checkin_email", s.queue.Jobs()[0].Type)
	})

	s.Run("non matching event runs nothing", func() {
		res, err := s.uc.Trigger(s.ctx, admin, "booking.created", nil)
		s.Require().NoError(err)
		s.Zero(res.Triggered)
	})

	s.Run("trigger is required", func() {
		_, err := s.uc.Trigger(s.ctx, admin, "  ", nil)
		s.True(errs.Is(err, domauto.ErrTriggerRequired))
	})
}
