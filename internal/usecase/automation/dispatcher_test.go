//go:build unit

package automation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domauto "rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/usecase/automation"
	"rental-backoffice/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func rule(t *testing.T, name, trigger string, conditions map[string]any, enabled bool, actions ...string) *domauto.Rule {
	t.Helper()
	raws := make([]domauto.RawAction, 0, len(actions))
	for _, a := range actions {
		raws = append(raws, domauto.RawAction{Type: a})
	}
	r, err := domauto.NewRule(domauto.RuleParams{
		Name:       name,
		Trigger:    trigger,
		Conditions: conditions,
		Actions:    raws,
		Enabled:    enabled,
	}, base)
	require.NoError(t, err)
	base = base.Add(time.Minute)
	return r
}

func TestDispatcherTrigger(t *testing.T) {
	ctx := context.Background()
	paid := map[string]any{
		"bookingId":     uuid.NewString(),
		"paymentStatus": "paid",
		"propertyId":    uuid.NewString(),
		"checkoutDate":  "2024-01-05",
	}

	t.Run("matching rules queue every action in order", func(t *testing.T) {
		store := memstore.New()
		queue := memstore.NewQueue()
		store.AddRule(rule(t, "paid welcome", "booking.created", map[string]any{"paymentStatus": "paid"}, true, "send_checkin_email"))
		store.AddRule(rule(t, "always clean", "booking.created", nil, true, "create_cleaning_task", "send_email"))
		store.AddRule(rule(t, "unpaid chaser", "booking.created", map[string]any{"paymentStatus": "pending"}, true, "send_email"))
		store.AddRule(rule(t, "disabled", "booking.created", nil, false, "send_email"))
		store.AddRule(rule(t, "other trigger", "booking.checked_in", nil, true, "send_email"))

		res := automation.NewDispatcher(store, queue).Trigger(ctx, "booking.created", paid)

		assert.Equal(t, 2, res.Triggered)
		assert.Empty(t, res.Errors)
		jobs := queue.Jobs()
		require.Len(t, jobs, 3)
		assert.Equal(t, "send_checkin_email", jobs[0].Type)
		assert.Equal(t, "checkin", jobs[0].Payload["template"])
		assert.Equal(t, "create_cleaning_task", jobs[1].Type)
		assert.Equal(t, "2024-01-05", jobs[1].Payload["scheduledDate"])
		assert.Equal(t, "send_email", jobs[2].Type)
	})

	t.Run("a broken rule is reported and the rest still run", func(t *testing.T) {
		store := memstore.New()
		queue := memstore.NewQueue()
		broken := domauto.ReconstructRule(uuid.New(), domauto.RuleParams{
			Name:    "legacy",
			Trigger: "booking.created",
			Actions: []domauto.RawAction{{Type: "send_pigeon"}},
			Enabled: true,
		}, base, base)
		store.AddRule(broken)
		store.AddRule(rule(t, "always clean", "booking.created", nil, true, "create_cleaning_task"))

		res := automation.NewDispatcher(store, queue).Trigger(ctx, "booking.created", paid)

		assert.Equal(t, 1, res.Triggered)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "legacy: ")
		assert.Len(t, queue.Jobs(), 1)
	})

	t.Run("enqueue failure counts as a rule error", func(t *testing.T) {
		store := memstore.New()
		queue := memstore.NewQueue()
		queue.Err = errors.New("redis down")
		store.AddRule(rule(t, "always clean", "booking.created", nil, true, "create_cleaning_task"))

		res := automation.NewDispatcher(store, queue).Trigger(ctx, "booking.created", paid)

		assert.Zero(t, res.Triggered)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "redis down")
	})

	t.Run("no rules for the trigger", func(t *testing.T) {
		res := automation.NewDispatcher(memstore.New(), memstore.NewQueue()).Trigger(ctx, "scheduled.daily", map[string]any{})
		assert.Zero(t, res.Triggered)
		assert.NotNil(t, res.Errors)
	})
}
