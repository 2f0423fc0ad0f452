//go:build unit

package task_test

import (
	"regexp"
	"testing"
	"time"

	"rental-backoffice/internal/domain/task"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)

func newCleaning(t *testing.T, scheduled time.Time) *task.CleaningTask {
	t.Helper()
	bookingID := uuid.New()
	ct, err := task.NewCleaningTask(task.NewCleaningParams{
		PropertyID:    uuid.New(),
		BookingID:     &bookingID,
		ScheduledDate: scheduled,
	}, now)
	require.NoError(t, err)
	return ct
}

func TestCleaningTask(t *testing.T) {
	t.Run("new task gets a code and a plain date", func(t *testing.T) {
		ct := newCleaning(t, time.Date(2024, 1, 9, 17, 0, 0, 0, time.UTC))
		assert.Regexp(t, regexp.MustCompile(`^CLN-20240109-[A-Z0-9]{6}$`), ct.Code())
		assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), ct.ScheduledDate())
		assert.Equal(t, task.CleaningNotStarted, ct.Status())
	})

	t.Run("missing schedule", func(t *testing.T) {
		_, err := task.NewCleaningTask(task.NewCleaningParams{PropertyID: uuid.New()}, now)
		require.ErrorIs(t, err, task.ErrMissingSchedule)
	})

	t.Run("pull forward moves open tasks to today", func(t *testing.T) {
		today := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
		future := newCleaning(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC))
		assert.True(t, future.PullForward(today, now))
		assert.Equal(t, today, future.ScheduledDate())

		overdue := newCleaning(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
		assert.True(t, overdue.PullForward(today, now))
		assert.Equal(t, today, overdue.ScheduledDate())

		assert.False(t, overdue.PullForward(today, now), "already due today")

		done := newCleaning(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
		_, err := done.Complete(nil, nil, now)
		require.NoError(t, err)
		assert.False(t, done.PullForward(today, now))
		assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), done.ScheduledDate())
	})

	t.Run("completion with cost asks for an expense exactly once", func(t *testing.T) {
		ct := newCleaning(t, now)
		cost := decimal.NewFromInt(60)
		due, err := ct.Complete(&cost, []string{"after.jpg"}, now)
		require.NoError(t, err)
		assert.True(t, due)
		assert.True(t, ct.IsCompleted())

		_, err = ct.Complete(&cost, nil, now)
		require.ErrorIs(t, err, task.ErrAlreadyResolved)
	})

	t.Run("completion without cost", func(t *testing.T) {
		ct := newCleaning(t, now)
		due, err := ct.Complete(nil, nil, now)
		require.NoError(t, err)
		assert.False(t, due)
	})

	t.Run("patch cannot complete", func(t *testing.T) {
		ct := newCleaning(t, now)
		completed := task.CleaningCompleted
		require.ErrorIs(t, ct.Apply(task.CleaningPatch{Status: &completed}, now), task.ErrResolveViaEndpoint)

		inProgress := task.CleaningInProgress
		require.NoError(t, ct.Apply(task.CleaningPatch{Status: &inProgress}, now))
		assert.Equal(t, task.CleaningInProgress, ct.Status())
	})

	t.Run("assignee", func(t *testing.T) {
		ct := newCleaning(t, now)
		userID := uuid.New()
		assignee := &userID
		require.NoError(t, ct.Apply(task.CleaningPatch{AssigneeID: &assignee}, now))
		assert.True(t, ct.IsAssignedTo(userID))
		assert.False(t, ct.IsAssignedTo(uuid.New()))
	})
}

func TestMaintenanceTask(t *testing.T) {
	newTask := func(t *testing.T) *task.MaintenanceTask {
		mt, err := task.NewMaintenanceTask(task.NewMaintenanceParams{PropertyID: uuid.New(), Title: "Leaking tap", Type: task.TypePlumbing}, now)
		require.NoError(t, err)
		return mt
	}

	t.Run("defaults", func(t *testing.T) {
		mt := newTask(t)
		assert.Equal(t, task.PriorityMedium, mt.Priority())
		assert.Equal(t, task.MaintenanceOpen, mt.Status())
	})

	t.Run("title required", func(t *testing.T) {
		_, err := task.NewMaintenanceTask(task.NewMaintenanceParams{PropertyID: uuid.New()}, now)
		require.ErrorIs(t, err, task.ErrTitleRequired)
	})

	t.Run("enum parsing", func(t *testing.T) {
		_, err := task.NewPriority("critical")
		require.ErrorIs(t, err, task.ErrInvalidPriority)
		_, err = task.NewMaintenanceType("roof")
		require.ErrorIs(t, err, task.ErrInvalidType)
	})

	t.Run("resolve", func(t *testing.T) {
		mt := newTask(t)
		cost := decimal.RequireFromString("120.50")
		due, err := mt.Resolve(&cost, "replaced washer", now)
		require.NoError(t, err)
		assert.True(t, due)
		assert.Contains(t, mt.Description(), "replaced washer")
		require.NotNil(t, mt.ResolvedAt())

		_, err = mt.Resolve(&cost, "", now)
		require.ErrorIs(t, err, task.ErrAlreadyResolved)

		title := "changed"
		require.ErrorIs(t, mt.Apply(task.MaintenancePatch{Title: &title}, now), task.ErrAlreadyResolved)
	})

	t.Run("negative cost", func(t *testing.T) {
		mt := newTask(t)
		cost := decimal.NewFromInt(-1)
		_, err := mt.Resolve(&cost, "", now)
		require.ErrorIs(t, err, task.ErrNegativeCost)
		assert.False(t, mt.IsResolved())
	})
}
