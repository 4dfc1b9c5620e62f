package transfer

import (
	"context"
	"time"

	"centavo/internal/domain/account"
)

// LedgerParams carries the already-validated shape of a transfer into the
// storage layer. Amount is the debit in source-currency minor units; the
// credit comes from the CheckFunc once both accounts are locked.
type LedgerParams struct {
	TransferID    string
	FromAccountID string
	ToAccountID   string
	Amount        int64
	Description   string
	Date          time.Time
}

// LedgerEntry reports the rows and balances a committed transfer produced.
type LedgerEntry struct {
	DebitTransactionID  string
	CreditTransactionID string
	FromBalance         int64
	ToBalance           int64
}

// CheckFunc runs inside the ledger transaction with both accounts freshly
// locked. It returns the credit amount in destination-currency minor units;
// returning an error aborts the transfer before any write.
type CheckFunc func(from, to *account.Account) (credit int64, err error)

// Ledger applies a transfer as one atomic unit: lock both account rows,
// invoke the check, apply both balance deltas and insert the two linked
// transaction rows. Any failure rolls everything back; concurrent transfers
// touching the same account serialize on the row locks.
type Ledger interface {
	Transfer(ctx context.Context, params LedgerParams, check CheckFunc) (*LedgerEntry, error)
}
