package transfer

import (
	"errors"

	"centavo/internal/domain/account"
)

// Domain errors. Account lookup failures surface as
// account.ErrAccountNotFound, rate failures as currency.ErrRateUnavailable.
var (
	ErrInvalidTransfer   = errors.New("source and destination accounts must differ")
	ErrInvalidAmount     = errors.New("transfer amount must be a positive number of minor units")
	ErrInsufficientFunds = errors.New("insufficient funds on source account")
)

// Params describes a requested transfer. Amount is in minor units of the
// source account's currency.
type Params struct {
	FromAccountID string
	ToAccountID   string
	Amount        int64
	Description   string
}

// Result reports a committed transfer: the shared transfer identifier, the
// two transaction rows it produced, and the post-transfer balances.
type Result struct {
	TransferID          string `json:"transferId"`
	DebitTransactionID  string `json:"debitTransactionId"`
	CreditTransactionID string `json:"creditTransactionId"`
	AmountSent          int64  `json:"amountSent"`     // source currency minor units
	AmountReceived      int64  `json:"amountReceived"` // destination currency minor units
	FromBalance         int64  `json:"fromBalance"`
	ToBalance           int64  `json:"toBalance"`
}

// Policy decides which account kinds may overdraw. Kinds on the overdraft
// list skip the insufficient-funds check and may go negative; by default
// only credit accounts do.
type Policy struct {
	overdraft map[account.Kind]struct{}
}

// NewPolicy builds a policy from the configured overdraft kinds.
func NewPolicy(kinds []account.Kind) Policy {
	m := make(map[account.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		m[k] = struct{}{}
	}
	return Policy{overdraft: m}
}

// DefaultPolicy exempts only credit accounts from the funds check.
func DefaultPolicy() Policy {
	return NewPolicy([]account.Kind{account.KindCredit})
}

// AllowsOverdraft reports whether accounts of the given kind may go negative.
func (p Policy) AllowsOverdraft(k account.Kind) bool {
	_, ok := p.overdraft[k]
	return ok
}
