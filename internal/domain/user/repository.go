package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	// Create registers a new user
	Create(ctx context.Context, params CreateParams) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdateDisplayCurrency changes the user's reporting currency
	UpdateDisplayCurrency(ctx context.Context, id int64, currency string) (*User, error)
}
