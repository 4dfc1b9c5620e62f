package category

import (
	"errors"
	"time"
)

// Kind marks whether a category applies to income or expense transactions.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Domain errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrForbidden        = errors.New("access forbidden")
	ErrInvalidKind      = errors.New("invalid category kind")
)

// Category groups transactions for budgeting and reporting.
type Category struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateParams contains parameters for creating a category
type CreateParams struct {
	UserID int64
	Name   string
	Kind   Kind
	Color  string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Name == "" {
		return errors.New("category name is required")
	}
	if p.Kind != KindIncome && p.Kind != KindExpense {
		return ErrInvalidKind
	}
	return nil
}

// UpdateParams contains parameters for updating a category
type UpdateParams struct {
	Name  *string
	Color *string
}
