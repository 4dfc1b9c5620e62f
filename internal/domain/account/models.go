package account

import (
	"errors"
	"time"
)

// Kind classifies an account for display and for the overdraft policy.
type Kind string

const (
	KindNormal  Kind = "normal"
	KindSavings Kind = "savings"
	KindBank    Kind = "bank"
	KindCash    Kind = "cash"
	KindCredit  Kind = "credit"
)

var validKinds = map[Kind]struct{}{
	KindNormal:  {},
	KindSavings: {},
	KindBank:    {},
	KindCash:    {},
	KindCredit:  {},
}

// Common ISO 4217 currency codes
var validCurrencies = map[string]struct{}{
	"USD": {}, "EUR": {}, "GBP": {}, "JPY": {}, "BRL": {},
	"CHF": {}, "CAD": {}, "AUD": {}, "NZD": {}, "CNY": {},
	"INR": {}, "MXN": {}, "ZAR": {}, "SEK": {}, "NOK": {},
	"DKK": {}, "PLN": {}, "TRY": {}, "RUB": {}, "KRW": {},
	"SGD": {}, "HKD": {}, "ARS": {}, "CLP": {}, "COP": {},
}

// Domain errors
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrForbidden       = errors.New("access forbidden")
	ErrInvalidKind     = errors.New("invalid account kind")
	ErrInvalidCurrency = errors.New("valid ISO 4217 currency is required")
	ErrInvalidInput    = errors.New("invalid input")
)

// Account represents a financial account. Balance is an integer amount of
// minor units (cents) and is always expressed in the account's own currency.
type Account struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"userId"`
	Name        string    `json:"name"`
	Kind        Kind      `json:"kind"`
	Currency    string    `json:"currency"`
	Balance     int64     `json:"balance"`
	Description string    `json:"description"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateParams contains parameters for creating a new account
type CreateParams struct {
	UserID         int64
	Name           string
	Kind           Kind
	Currency       string
	InitialBalance int64
	Description    string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Name == "" {
		return errors.New("account name is required")
	}
	if !IsValidKind(p.Kind) {
		return ErrInvalidKind
	}
	if !IsValidCurrency(p.Currency) {
		return ErrInvalidCurrency
	}
	return nil
}

// UpdateParams contains parameters for updating an account. Nil fields are
// left unchanged. Currency and balance are deliberately absent: currency is
// fixed at creation and balances only move through transactions and
// transfers.
type UpdateParams struct {
	Name        *string
	Kind        *Kind
	Description *string
	Archived    *bool
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("account name cannot be empty")
	}
	if p.Kind != nil && !IsValidKind(*p.Kind) {
		return ErrInvalidKind
	}
	return nil
}

// IsValidKind checks if the provided account kind is valid.
func IsValidKind(k Kind) bool {
	_, ok := validKinds[k]
	return ok
}

// IsValidCurrency checks if the provided currency is a valid ISO 4217 code.
func IsValidCurrency(c string) bool {
	if len(c) != 3 {
		return false
	}
	_, ok := validCurrencies[c]
	return ok
}
