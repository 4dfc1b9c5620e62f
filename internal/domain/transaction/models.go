package transaction

import (
	"errors"
	"time"
)

// Type determines the sign a transaction applies to its account balance.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Domain errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrForbidden           = errors.New("access forbidden")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidAmount       = errors.New("amount must be a positive number of minor units")
	// ErrPartOfTransfer guards the transfer invariant: the two legs of a
	// transfer always stay consistent with each other and with both account
	// balances, so they cannot be edited or deleted individually.
	ErrPartOfTransfer = errors.New("transaction belongs to a transfer and cannot be modified directly")
)

// Transaction is a single ledger entry on an account. Amount is a positive
// integer of minor units in the account's currency; the direction comes from
// Type. TransferID links the paired debit/credit rows created by a transfer.
type Transaction struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"accountId"`
	CategoryID  *int64    `json:"categoryId,omitempty"`
	Type        Type      `json:"type"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	TransferID  *string   `json:"transferId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Signed returns the amount with the sign implied by the type: positive for
// income, negative for expense.
func (t *Transaction) Signed() int64 {
	if t.Type == TypeExpense {
		return -t.Amount
	}
	return t.Amount
}

// IsTransferLeg reports whether this row was created by a transfer.
func (t *Transaction) IsTransferLeg() bool {
	return t.TransferID != nil
}

// CreateParams contains parameters for creating a transaction
type CreateParams struct {
	AccountID   string
	CategoryID  *int64
	Type        Type
	Amount      int64
	Description string
	Date        time.Time
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.AccountID == "" {
		return errors.New("account ID is required")
	}
	if p.Type != TypeIncome && p.Type != TypeExpense {
		return ErrInvalidType
	}
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// UpdateParams contains parameters for updating a transaction. Nil fields
// are left unchanged.
type UpdateParams struct {
	CategoryID    *int64
	ClearCategory bool
	Type          *Type
	Amount        *int64
	Description   *string
	Date          *time.Time
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Type != nil && *p.Type != TypeIncome && *p.Type != TypeExpense {
		return ErrInvalidType
	}
	if p.Amount != nil && *p.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ListFilter narrows a transaction listing.
type ListFilter struct {
	AccountID  *string
	CategoryID *int64
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// CurrencySum is a per-currency total of transaction amounts, used by the
// budget and report services before currency conversion.
type CurrencySum struct {
	Currency string
	Total    int64
}
