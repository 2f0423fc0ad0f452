package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/config"
	"rental-backoffice/internal/usecase/shared"

	"github.com/robfig/cron/v3"
)

// Scheduler raises the recurring automation triggers. Every replica runs its own copy.
type Scheduler struct {
	cron      *cron.Cron
	cfg       config.SchedulerConfig
	publisher shared.EventPublisher
	clock     clock.Clock
	loc       *time.Location
}

func New(cfg config.SchedulerConfig, lifecycle config.LifecycleConfig, publisher shared.EventPublisher, clk clock.Clock) *Scheduler {
	loc := lifecycle.Location()
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		cfg:       cfg,
		publisher: publisher,
		clock:     clk,
		loc:       loc,
	}
}

func (s *Scheduler) Start(_ context.Context) error {
	if !s.cfg.Enabled {
		slog.Info("scheduler disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.cfg.DailyCron, s.fire(automation.TriggerScheduledDaily)); err != nil {
		return fmt.Errorf("invalid daily cron expression %q: %w", s.cfg.DailyCron, err)
	}
	if _, err := s.cron.AddFunc(s.cfg.MonthlyCron, s.fire(automation.TriggerScheduledMonthly)); err != nil {
		return fmt.Errorf("invalid monthly cron expression %q: %w", s.cfg.MonthlyCron, err)
	}
	s.cron.Start()
	slog.Info("scheduler started", "daily", s.cfg.DailyCron, "monthly", s.cfg.MonthlyCron, "timezone", s.loc.String())
	return nil
}

func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) fire(trigger string) func() {
	return func() {
		date := clock.Today(s.clock, s.loc).Format(time.DateOnly)
		slog.Info("scheduled trigger fired", "trigger", trigger, "date", date)
		s.publisher.Publish(trigger, map[string]any{
			"date":    date,
			"trigger": trigger,
		})
	}
}
