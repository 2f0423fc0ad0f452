package components

import (
	"rental-backoffice/internal/infra/queue"
	"rental-backoffice/internal/infra/scheduler"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/config"
	"rental-backoffice/internal/usecase/jobs"
	"rental-backoffice/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// WorkerModule owns the background side: the job queue consumers and the cron triggers.
var WorkerModule = fx.Module("worker",
	fx.Provide(
		fx.Annotate(
			NewJobQueue,
			fx.As(new(shared.JobQueue)),
			fx.As(new(jobs.Dequeuer)),
		),
		fx.Annotate(
			jobs.NewHandler,
			fx.As(new(jobs.JobHandler)),
		),
		NewJobWorker,
		NewScheduler,
	),
	fx.Invoke(func(*jobs.Worker, *scheduler.Scheduler) {}),
)

func NewJobQueue(client *redis.Client, cfg config.Config) *queue.RedisQueue {
	return queue.NewRedisQueue(client, cfg.Redis)
}

func NewJobWorker(lc fx.Lifecycle, dq jobs.Dequeuer, handler jobs.JobHandler, cfg config.Config) *jobs.Worker {
	w := jobs.NewWorker(dq, handler, cfg.Events.JobWorkers)
	lc.Append(fx.StartStopHook(w.Start, w.Stop))
	return w
}

func NewScheduler(lc fx.Lifecycle, cfg config.Config, publisher shared.EventPublisher, clk clock.Clock) *scheduler.Scheduler {
	s := scheduler.New(cfg.Scheduler, cfg.Lifecycle, publisher, clk)
	lc.Append(fx.StartStopHook(s.Start, s.Stop))
	return s
}
