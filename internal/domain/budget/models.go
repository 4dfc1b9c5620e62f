package budget

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrForbidden      = errors.New("access forbidden")
	ErrInvalidPeriod  = errors.New("period must be in YYYY-MM format")
	ErrInvalidLimit   = errors.New("budget limit must be a positive number of minor units")
)

// Budget caps spending for one category in one calendar month. The limit is
// in minor units of the user's display currency.
type Budget struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	CategoryID int64     `json:"categoryId"`
	Period     string    `json:"period"` // YYYY-MM
	Limit      int64     `json:"limit"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Status is a budget with its spending so far, converted into the user's
// display currency. RateIncomplete marks totals that exclude one or more
// currencies missing from the rate snapshot.
type Status struct {
	Budget
	Spent          int64 `json:"spent"`
	Remaining      int64 `json:"remaining"`
	RateIncomplete bool  `json:"rateIncomplete,omitempty"`
}

// CreateParams contains parameters for creating a budget
type CreateParams struct {
	UserID     int64
	CategoryID int64
	Period     string
	Limit      int64
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.CategoryID <= 0 {
		return errors.New("valid category ID is required")
	}
	if _, _, err := PeriodBounds(p.Period); err != nil {
		return err
	}
	if p.Limit <= 0 {
		return ErrInvalidLimit
	}
	return nil
}

// UpdateParams contains parameters for updating a budget
type UpdateParams struct {
	Limit *int64
}

// PeriodBounds returns the half-open [from, to) range of a YYYY-MM period.
func PeriodBounds(period string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	return from, from.AddDate(0, 1, 0), nil
}
