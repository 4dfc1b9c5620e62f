package budget

import "context"

// Repository defines the interface for budget data access
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Budget, error)
	GetByID(ctx context.Context, id int64) (*Budget, error)
	ListByUserID(ctx context.Context, userID int64, period string) ([]*Budget, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Budget, error)
	Delete(ctx context.Context, id int64) error
}
