//go:build unit

package scheduler

import (
	"context"
	"testing"
	"time"

	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	triggers []string
	data     []map[string]any
}

func (p *recordingPublisher) Publish(trigger string, data map[string]any) {
	p.triggers = append(p.triggers, trigger)
	p.data = append(p.data, data)
}

func TestFire(t *testing.T) {
	pub := &recordingPublisher{}
	clk := clock.NewMockClock(time.Date(2024, time.March, 1, 23, 30, 0, 0, time.UTC))
	s := New(config.SchedulerConfig{}, config.LifecycleConfig{TimeZone: "Asia/Tokyo"}, pub, clk)

	s.fire("scheduled.daily")()

	require.Equal(t, []string{"scheduled.daily"}, pub.triggers)
	// 23:30 UTC is already the next day in Tokyo
	assert.Equal(t, map[string]any{"date": "2024-03-02", "trigger": "scheduled.daily"}, pub.data[0])
}

func TestStart(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.SchedulerConfig
		wantErr bool
		entries int
	}{
		{
			name:    "registers both triggers",
			cfg:     config.SchedulerConfig{Enabled: true, DailyCron: "0 6 * * *", MonthlyCron: "0 7 1 * *"},
			entries: 2,
		},
		{
			name:    "disabled registers nothing",
			cfg:     config.SchedulerConfig{Enabled: false, DailyCron: "0 6 * * *", MonthlyCron: "0 7 1 * *"},
			entries: 0,
		},
		{
			name:    "invalid expression",
			cfg:     config.SchedulerConfig{Enabled: true, DailyCron: "every day", MonthlyCron: "0 7 1 * *"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.cfg, config.LifecycleConfig{TimeZone: "UTC"}, &recordingPublisher{}, clock.NewRealClock())

			err := s.Start(context.Background())
			defer func() { _ = s.Stop(context.Background()) }()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, s.cron.Entries(), tt.entries)
		})
	}
}
