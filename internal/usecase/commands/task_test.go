//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/domain/task"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/tests/common/builder"
	"rental-backoffice/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TaskCommandsTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memstore.Store
	clock *clock.MockClock
	uc    commands.TaskCommands
	world builder.Portfolio
}

func TestTaskCommandsSuite(t *testing.T) {
	suite.Run(t, new(TaskCommandsTestSuite))
}

func (s *TaskCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC))
	s.world = builder.NewPortfolio(s.clock.Now()).Seed(s.store)
	s.uc = commands.NewTaskUseCase(s.store, s.clock)
}

func (s *TaskCommandsTestSuite) cleaningFor(assignee uuid.UUID) uuid.UUID {
	id, err := s.uc.CreateCleaning(s.ctx, assistant, commands.CreateCleaningInput{
		PropertyID:    s.world.Property.ID(),
		UnitID:        s.world.UnitAID(),
		ScheduledDate: builder.Date(2024, time.March, 2),
		AssigneeID:    &assignee,
	})
	s.Require().NoError(err)
	return id
}

func (s *TaskCommandsTestSuite) TestCreateCleaning() {
	s.Run("success: code derives from the scheduled date", func() {
		s.SetupTest()
		s.cleaningFor(cleaner.ID)
		tasks := s.store.CleaningTasks()
		s.Require().Len(tasks, 1)
		s.Equal(task.CleaningNotStarted, tasks[0].Status())
		s.Contains(tasks[0].Code(), "20240302")
	})

	s.Run("error: unknown booking", func() {
		s.SetupTest()
		missing := uuid.New()
		_, err := s.uc.CreateCleaning(s.ctx, assistant, commands.CreateCleaningInput{
			PropertyID:    s.world.Property.ID(),
			BookingID:     &missing,
			ScheduledDate: builder.Date(2024, time.March, 2),
		})
		s.True(errs.Is(err, commands.ErrBookingNotFound))
	})

	s.Run("error: field staff cannot create", func() {
		s.SetupTest()
		_, err := s.uc.CreateCleaning(s.ctx, cleaner, commands.CreateCleaningInput{PropertyID: s.world.Property.ID(), ScheduledDate: s.clock.Now()})
		s.Equal(errs.KindForbidden, errs.KindOf(err))
	})
}

func (s *TaskCommandsTestSuite) TestResolveCleaning() {
	cost := decimal.NewFromInt(45)

	s.Run("success: assignee resolves and an expense is booked", func() {
		s.SetupTest()
		id := s.cleaningFor(cleaner.ID)
		s.Require().NoError(s.uc.ResolveCleaning(s.ctx, cleaner, id, commands.ResolveCleaningInput{Cost: &cost, AfterPhotos: []string{"s3://after.jpg"}}))

		t := s.store.CleaningTasks()[0]
		s.True(t.IsCompleted())
		records := s.store.FinanceRecords()
		s.Require().Len(records, 1)
		s.Equal(finance.TypeExpense, records[0].Type())
		s.True(cost.Equal(records[0].Amount()))
	})

	s.Run("success: no cost means no expense", func() {
		s.SetupTest()
		id := s.cleaningFor(cleaner.ID)
		s.Require().NoError(s.uc.ResolveCleaning(s.ctx, assistant, id, commands.ResolveCleaningInput{}))
		s.Empty(s.store.FinanceRecords())
	})

	s.Run("error: another cleaner's task", func() {
		s.SetupTest()
		id := s.cleaningFor(uuid.New())
		err := s.uc.ResolveCleaning(s.ctx, cleaner, id, commands.ResolveCleaningInput{})
		s.True(errs.Is(err, commands.ErrTaskNotAssigned))
		s.Equal(errs.KindForbidden, errs.KindOf(err))
	})

	s.Run("error: resolving twice", func() {
		s.SetupTest()
		id := s.cleaningFor(cleaner.ID)
		s.Require().NoError(s.uc.ResolveCleaning(s.ctx, cleaner, id, commands.ResolveCleaningInput{Cost: &cost}))
		err := s.uc.ResolveCleaning(s.ctx, cleaner, id, commands.ResolveCleaningInput{Cost: &cost})
		s.True(errs.Is(err, task.ErrAlreadyResolved))
		s.Len(s.store.FinanceRecords(), 1)
	})
}

func (s *TaskCommandsTestSuite) TestMaintenance() {
	s.Run("success: create, update and resolve with a note", func() {
		s.SetupTest()
		id, err := s.uc.CreateMaintenance(s.ctx, admin, commands.CreateMaintenanceInput{
			PropertyID: s.world.Property.ID(),
			Title:      "Dripping tap",
			Priority:   "high",
			Type:       "plumbing",
			AssigneeID: &cleaner.ID,
		})
		s.Require().NoError(err)

		title := "Dripping kitchen tap"
		s.Require().NoError(s.uc.UpdateMaintenance(s.ctx, assistant, id, commands.UpdateMaintenanceInput{Title: &title}))

		cost := decimal.NewFromInt(120)
		s.Require().NoError(s.uc.ResolveMaintenance(s.ctx, admin, id, commands.ResolveMaintenanceInput{Cost: &cost, Note: "washer replaced"}))

		tasks := s.store.MaintenanceTasks()
		s.Require().Len(tasks, 1)
		s.Equal(title, tasks[0].Title())
		s.True(tasks[0].IsResolved())
		s.Contains(tasks[0].Description(), "Resolution: washer replaced")
		s.Len(s.store.FinanceRecords(), 1)
	})

	s.Run("error: unknown priority", func() {
		s.SetupTest()
		_, err := s.uc.CreateMaintenance(s.ctx, admin, commands.CreateMaintenanceInput{
			PropertyID: s.world.Property.ID(),
			Title:      "Broken AC",
			Priority:   "whenever",
		})
		s.True(errs.Is(err, task.ErrInvalidPriority))
	})

	s.Run("error: unit outside the property", func() {
		s.SetupTest()
		other := builder.NewPortfolio(s.clock.Now())
		s.store.AddUnit(other.UnitA)
		_, err := s.uc.CreateMaintenance(s.ctx, admin, commands.CreateMaintenanceInput{
			PropertyID: s.world.Property.ID(),
			UnitID:     other.UnitAID(),
			Title:      "Broken AC",
		})
		s.Equal(errs.KindValidation, errs.KindOf(err))
	})
}
