//go:build unit

package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"rental-backoffice/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockListClient struct {
	mock.Mock
}

func (m *mockListClient) LPush(ctx context.Context, key string, values ...any) *redis.IntCmd {
	args := m.Called(ctx, key, values)
	return args.Get(0).(*redis.IntCmd)
}

func (m *mockListClient) BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd {
	args := m.Called(ctx, timeout, keys)
	return args.Get(0).(*redis.StringSliceCmd)
}

func newTestQueue(client listClient) *RedisQueue {
	q := NewRedisQueue(client, config.RedisConfig{QueuePrefix: "test:jobs"})
	q.now = func() time.Time { return time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC) }
	return q
}

func TestEnqueue(t *testing.T) {
	client := new(mockListClient)
	var pushed []byte
	client.On("LPush", mock.Anything, "test:jobs:pending", mock.Anything).
		Run(func(args mock.Arguments) {
			values := args.Get(2).([]any)
			pushed = values[0].([]byte)
		}).
		Return(redis.NewIntResult(1, nil))

	err := newTestQueue(client).Enqueue(context.Background(), "send_email", map[string]any{"to": "ana@example.com"})

	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(pushed, &decoded))
	assert.Equal(t, "send_email", decoded["type"])
	assert.Equal(t, map[string]any{"to": "ana@example.com"}, decoded["payload"])
	assert.NotEmpty(t, decoded["id"])
	client.AssertExpectations(t)
}

func TestEnqueueRedisFailure(t *testing.T) {
	client := new(mockListClient)
	client.On("LPush", mock.Anything, mock.Anything, mock.Anything).Return(redis.NewIntResult(0, assert.AnError))

	err := newTestQueue(client).Enqueue(context.Background(), "send_email", nil)

	assert.ErrorIs(t, err, assert.AnError)
}

func TestDequeue(t *testing.T) {
	t.Run("decodes the job with numbers kept exact", func(t *testing.T) {
		body := `{"id":"j1","type":"create_cleaning_task","payload":{"cost":"12.50","nights":4},"enqueued_at":"2024-01-01T08:00:00Z"}`
		client := new(mockListClient)
		client.On("BRPop", mock.Anything, time.Second, []string{"test:jobs:pending"}).
			Return(redis.NewStringSliceResult([]string{"test:jobs:pending", body}, nil))

		job, err := newTestQueue(client).Dequeue(context.Background(), time.Second)

		require.NoError(t, err)
		require.NotNil(t, job)
		assert.Equal(t, "create_cleaning_task", job.Type)
		assert.Equal(t, json.Number("4"), job.Payload["nights"])
	})

	t.Run("timeout yields no job", func(t *testing.T) {
		client := new(mockListClient)
		client.On("BRPop", mock.Anything, time.Second, mock.Anything).
			Return(redis.NewStringSliceResult(nil, redis.Nil))

		job, err := newTestQueue(client).Dequeue(context.Background(), time.Second)

		require.NoError(t, err)
		assert.Nil(t, job)
	})
}
