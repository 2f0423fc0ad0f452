package sqlc

import (
	"context"
)

const createNotificationJob = `-- name: CreateNotificationJob :exec
INSERT INTO notification_jobs (id, kind, topic, payload, run_at, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, 'queued', now(), now())
`

func (q *Queries) CreateNotificationJob(ctx context.Context, db DBTX, arg NotificationJobs) error {
	_, err := db.Exec(ctx, createNotificationJob, arg.ID, arg.Kind, arg.Topic, arg.Payload, arg.RunAt)
	return err
}
