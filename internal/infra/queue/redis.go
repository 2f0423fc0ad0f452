package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rental-backoffice/internal/pkg/config"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient pings once so a misconfigured address fails at startup.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

type listClient interface {
	LPush(ctx context.Context, key string, values ...any) *redis.IntCmd
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

// RedisQueue is a FIFO list: producers LPUSH, the worker BRPOPs.
type RedisQueue struct {
	client listClient
	key    string
	now    func() time.Time
}

func NewRedisQueue(client listClient, cfg config.RedisConfig) *RedisQueue {
	return &RedisQueue{
		client: client,
		key:    cfg.QueuePrefix + ":pending",
		now:    time.Now,
	}
}

func (q *RedisQueue) Key() string {
	return q.key
}

func (q *RedisQueue) Enqueue(ctx context.Context, jobType string, payload map[string]any) error {
	body, err := json.Marshal(shared.QueuedJob{
		ID:         uuid.NewString(),
		Type:       jobType,
		Payload:    payload,
		EnqueuedAt: q.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s job: %w", jobType, err)
	}
	if err := q.client.LPush(ctx, q.key, body).Err(); err != nil {
		return fmt.Errorf("failed to enqueue %s job: %w", jobType, err)
	}
	return nil
}

// Dequeue blocks up to timeout and returns nil when nothing arrived.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*shared.QueuedJob, error) {
	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue job: %w", err)
	}
	// BRPOP replies [key, value]
	if len(res) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply of %d elements", len(res))
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(res[1])))
	dec.UseNumber()
	var job shared.QueuedJob
	if err := dec.Decode(&job); err != nil {
		return nil, fmt.Errorf("failed to decode queued job: %w", err)
	}
	return &job, nil
}
