package transfer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"centavo/internal/domain/account"
	"centavo/internal/domain/currency"
)

// Service orchestrates atomic two-account transfers: debit the source,
// credit the destination (converting currency when they differ) and record
// the paired transaction rows, all inside one ledger transaction.
type Service struct {
	ledger Ledger
	rates  currency.SnapshotSource
	policy Policy
}

// NewService creates a new transfer service
func NewService(ledger Ledger, rates currency.SnapshotSource, policy Policy) *Service {
	return &Service{ledger: ledger, rates: rates, policy: policy}
}

// Transfer moves params.Amount minor units from the source account to the
// destination account of the requesting user. On any failure nothing is
// written; the error identifies which precondition failed.
func (s *Service) Transfer(ctx context.Context, userID int64, params Params) (*Result, error) {
	if params.FromAccountID == params.ToAccountID {
		return nil, ErrInvalidTransfer
	}
	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	// Fetch the snapshot before opening the ledger transaction so provider
	// I/O never runs while rows are locked. A fetch failure is tolerated
	// here: same-currency transfers don't need rates at all, and we only
	// know the currencies once the accounts are loaded.
	snap, snapErr := s.rates.Current(ctx)
	if snapErr != nil {
		log.Printf("Transfer: rate snapshot unavailable: %v", snapErr)
	}

	transferID := uuid.NewString()
	var received int64

	check := func(from, to *account.Account) (int64, error) {
		if from.UserID != userID || to.UserID != userID {
			// Foreign accounts read as not found, same as missing ones
			return 0, account.ErrAccountNotFound
		}

		credit := params.Amount
		if from.Currency != to.Currency {
			if snapErr != nil {
				return 0, fmt.Errorf("%w: %v", currency.ErrRateUnavailable, snapErr)
			}
			converted, err := currency.Convert(params.Amount, from.Currency, to.Currency, snap)
			if err != nil {
				return 0, err
			}
			credit = converted
		}

		if !s.policy.AllowsOverdraft(from.Kind) && from.Balance < params.Amount {
			return 0, ErrInsufficientFunds
		}

		received = credit
		return credit, nil
	}

	entry, err := s.ledger.Transfer(ctx, LedgerParams{
		TransferID:    transferID,
		FromAccountID: params.FromAccountID,
		ToAccountID:   params.ToAccountID,
		Amount:        params.Amount,
		Description:   params.Description,
		Date:          time.Now().UTC(),
	}, check)
	if err != nil {
		return nil, err
	}

	return &Result{
		TransferID:          transferID,
		DebitTransactionID:  entry.DebitTransactionID,
		CreditTransactionID: entry.CreditTransactionID,
		AmountSent:          params.Amount,
		AmountReceived:      received,
		FromBalance:         entry.FromBalance,
		ToBalance:           entry.ToBalance,
	}, nil
}
