package scheduler

import "context"

// Job is a unit of work the worker pool executes. Different job types plug
// in here: recurring transaction materialization, rate refreshes, cleanup.
type Job interface {
	// Execute runs the job. The context carries the pool's cancellation and
	// a per-job timeout.
	Execute(ctx context.Context) error

	// UserID identifies whose data the job touches, for logging. Jobs that
	// are not user-scoped return "system".
	UserID() string

	// Description is a human-readable summary used in logs.
	Description() string
}
