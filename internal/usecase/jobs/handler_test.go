//go:build unit

package jobs_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"rental-backoffice/internal/domain/property"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/config"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/internal/usecase/jobs"
	"rental-backoffice/internal/usecase/shared"
	"rental-backoffice/tests/common/builder"
	"rental-backoffice/tests/common/memstore"

	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memstore.Store
	clock   *clock.MockClock
	world   builder.Portfolio
	handler *jobs.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(time.Date(2024, time.March, 10, 23, 30, 0, 0, time.UTC))
	s.world = builder.NewPortfolio(s.clock.Now()).Seed(s.store)
	lifecycle := config.LifecycleConfig{BookingArchiveAfterDays: 90, GuestArchiveAfterDays: 365, TimeZone: "UTC"}
	s.handler = jobs.NewHandler(s.store, commands.NewTaskUseCase(s.store, s.clock), s.clock, lifecycle)
}

func (s *HandlerTestSuite) job(jobType string, payload map[string]any) *shared.QueuedJob {
	return &shared.QueuedJob{ID: "job-1", Type: jobType, Payload: payload, EnqueuedAt: s.clock.Now()}
}

func (s *HandlerTestSuite) TestCreateCleaningTask() {
	s.Run("scheduled on the payload date", func() {
		s.SetupTest()
		err := s.handler.Handle(s.ctx, s.job("create_cleaning_task", map[string]any{
			"propertyId":    s.world.Property.ID().String(),
			"unitId":        s.world.UnitA.ID().String(),
			"scheduledDate": "2024-03-12",
		}))
		s.Require().NoError(err)
		tasks := s.store.CleaningTasks()
		s.Require().Len(tasks, 1)
		s.Equal(builder.Date(2024, time.March, 12), tasks[0].ScheduledDate())
	})

	s.Run("defaults to today", func() {
		s.SetupTest()
		err := s.handler.Handle(s.ctx, s.job("create_cleaning_task", map[string]any{
			"propertyId": s.world.Property.ID().String(),
		}))
		s.Require().NoError(err)
		s.Equal(builder.Date(2024, time.March, 10), s.store.CleaningTasks()[0].ScheduledDate())
	})

	for name, payload := range map[string]map[string]any{
		"missing property": {"scheduledDate": "2024-03-12"},
		"bad uuid":         {"propertyId": "not-a-uuid"},
		"bad date":         {"propertyId": "00000000-0000-0000-0000-000000000001", "scheduledDate": "next tuesday"},
	} {
		s.Run("error: "+name, func() {
			s.SetupTest()
			err := s.handler.Handle(s.ctx, s.job("create_cleaning_task", payload))
			s.True(errs.Is(err, jobs.ErrMalformedPayload), "got %v", err)
			s.Empty(s.store.CleaningTasks())
		})
	}
}

func (s *HandlerTestSuite) TestCreateMaintenanceReminder() {
	s.Run("one reminder per active property", func() {
		s.SetupTest()
		second, err := property.NewProperty("LOFT-2", "City Loft", "", s.clock.Now())
		s.Require().NoError(err)
		s.store.AddProperty(second)
		closed, err := property.NewProperty("OLD-3", "Old Cabin", "", s.clock.Now())
		s.Require().NoError(err)
		s.Require().NoError(closed.SetStatus(property.StatusInactive, s.clock.Now()))
		s.store.AddProperty(closed)

		err = s.handler.Handle(s.ctx, s.job("create_maintenance_reminder", map[string]any{
			"title":           "Monthly AC service",
			"maintenanceType": "ac",
			"dueDate":         "2024-03-31",
		}))
		s.Require().NoError(err)

		tasks := s.store.MaintenanceTasks()
		s.Require().Len(tasks, 2)
		for _, t := range tasks {
			s.Equal("Monthly AC service", t.Title())
			s.NotEqual(closed.ID(), t.PropertyID())
		}
	})

	s.Run("targets the named property", func() {
		s.SetupTest()
		err := s.handler.Handle(s.ctx, s.job("create_maintenance_reminder", map[string]any{
			"propertyId": s.world.Property.ID().String(),
			"title":      "Check smoke alarms",
		}))
		s.Require().NoError(err)
		s.Len(s.store.MaintenanceTasks(), 1)
	})
}

func (s *HandlerTestSuite) TestEmailJobsGoToTheOutbox() {
	err := s.handler.Handle(s.ctx, s.job("send_checkout_email", map[string]any{
		"template":  "checkout",
		"bookingId": "b-1",
	}))
	s.Require().NoError(err)

	outbox := s.store.NotificationJobs()
	s.Require().Len(outbox, 1)
	s.Equal("send_checkout_email", outbox[0].Kind)
	s.Equal("checkout", outbox[0].Topic)
	var payload map[string]any
	s.Require().NoError(json.Unmarshal(outbox[0].Payload, &payload))
	s.Equal("b-1", payload["bookingId"])
}

func (s *HandlerTestSuite) TestUnknownJob() {
	err := s.handler.Handle(s.ctx, s.job("launch_rocket", nil))
	s.True(errs.Is(err, jobs.ErrUnknownJob))
}
