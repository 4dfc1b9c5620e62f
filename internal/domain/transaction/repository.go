package transaction

import (
	"context"
	"time"
)

// Repository defines the interface for transaction data access.
// Create, Update and Delete also apply the matching balance delta to the
// owning account; implementations must make the row write and the balance
// write atomic.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Transaction, error)
	GetByID(ctx context.Context, id string) (*Transaction, error)
	ListByUserID(ctx context.Context, userID int64, filter ListFilter) ([]*Transaction, error)
	CountByUserID(ctx context.Context, userID int64, filter ListFilter) (int64, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Transaction, error)
	Delete(ctx context.Context, id string) error

	// SumExpensesByCategory totals expense amounts per currency for one
	// category within [from, to). Used by the budget service.
	SumExpensesByCategory(ctx context.Context, userID, categoryID int64, from, to time.Time) ([]CurrencySum, error)
}
