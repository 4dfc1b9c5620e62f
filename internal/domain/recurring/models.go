package recurring

import (
	"errors"
	"time"

	"centavo/internal/domain/transaction"
)

// Interval is how often a recurring transaction fires.
type Interval string

const (
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
	IntervalYearly  Interval = "yearly"
)

// Domain errors
var (
	ErrRecurringNotFound = errors.New("recurring transaction not found")
	ErrForbidden         = errors.New("access forbidden")
	ErrInvalidInterval   = errors.New("invalid recurrence interval")
)

// RecurringTransaction is a template the scheduler materializes into real
// transactions each time NextRun comes due.
type RecurringTransaction struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"userId"`
	AccountID   string           `json:"accountId"`
	CategoryID  *int64           `json:"categoryId,omitempty"`
	Type        transaction.Type `json:"type"`
	Amount      int64            `json:"amount"`
	Description string           `json:"description"`
	Interval    Interval         `json:"interval"`
	NextRun     time.Time        `json:"nextRun"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// NextAfter advances a due date by one interval.
func (i Interval) NextAfter(t time.Time) time.Time {
	switch i {
	case IntervalDaily:
		return t.AddDate(0, 0, 1)
	case IntervalWeekly:
		return t.AddDate(0, 0, 7)
	case IntervalMonthly:
		return t.AddDate(0, 1, 0)
	case IntervalYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t
	}
}

// IsValidInterval checks if the provided interval is valid.
func IsValidInterval(i Interval) bool {
	switch i {
	case IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalYearly:
		return true
	}
	return false
}

// CreateParams contains parameters for creating a recurring transaction
type CreateParams struct {
	UserID      int64
	AccountID   string
	CategoryID  *int64
	Type        transaction.Type
	Amount      int64
	Description string
	Interval    Interval
	FirstRun    time.Time
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.AccountID == "" {
		return errors.New("account ID is required")
	}
	if p.Type != transaction.TypeIncome && p.Type != transaction.TypeExpense {
		return transaction.ErrInvalidType
	}
	if p.Amount <= 0 {
		return transaction.ErrInvalidAmount
	}
	if !IsValidInterval(p.Interval) {
		return ErrInvalidInterval
	}
	if p.FirstRun.IsZero() {
		return errors.New("first run date is required")
	}
	return nil
}

// UpdateParams contains parameters for updating a recurring transaction
type UpdateParams struct {
	CategoryID  *int64
	Amount      *int64
	Description *string
	Interval    *Interval
	NextRun     *time.Time
	Active      *bool
}
