package recurring

import (
	"context"
	"time"
)

// Repository defines the interface for recurring transaction data access
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*RecurringTransaction, error)
	GetByID(ctx context.Context, id int64) (*RecurringTransaction, error)
	ListByUserID(ctx context.Context, userID int64) ([]*RecurringTransaction, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*RecurringTransaction, error)
	Delete(ctx context.Context, id int64) error

	// ListDue returns a user's active entries with next_run <= asOf
	ListDue(ctx context.Context, userID int64, asOf time.Time) ([]*RecurringTransaction, error)

	// ListUserIDsWithDue returns the users that have at least one due entry,
	// for the scheduler's job provider
	ListUserIDsWithDue(ctx context.Context, asOf time.Time) ([]int64, error)
}
