package goal

import (
	"errors"
	"time"

	"centavo/internal/domain/account"
)

// Domain errors
var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrForbidden     = errors.New("access forbidden")
	ErrInvalidTarget = errors.New("target must be a positive number of minor units")
)

// Goal is a savings target. When AccountID is set, progress is read from the
// linked account's balance and converted into the goal's currency.
type Goal struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	Name         string     `json:"name"`
	TargetAmount int64      `json:"targetAmount"`
	Currency     string     `json:"currency"`
	AccountID    *string    `json:"accountId,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Progress reports how far along a goal is. Current is in the goal's
// currency. RateUnavailable means the linked account's balance could not be
// converted, in which case Current and Percent are zero rather than wrong.
type Progress struct {
	Goal            *Goal   `json:"goal"`
	Current         int64   `json:"current"`
	Percent         float64 `json:"percent"`
	Achieved        bool    `json:"achieved"`
	RateUnavailable bool    `json:"rateUnavailable,omitempty"`
}

// CreateParams contains parameters for creating a goal
type CreateParams struct {
	UserID       int64
	Name         string
	TargetAmount int64
	Currency     string
	AccountID    *string
	Deadline     *time.Time
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("goal name is required")
	}
	if p.TargetAmount <= 0 {
		return ErrInvalidTarget
	}
	if p.Currency != "" && !account.IsValidCurrency(p.Currency) {
		return account.ErrInvalidCurrency
	}
	return nil
}

// UpdateParams contains parameters for updating a goal
type UpdateParams struct {
	Name         *string
	TargetAmount *int64
	AccountID    *string
	ClearAccount bool
	Deadline     *time.Time
}
