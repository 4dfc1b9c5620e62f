package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"centavo/internal/domain/account"
	"centavo/internal/domain/transaction"
	"centavo/internal/domain/transfer"
)

// TransferRepository implements transfer.Ledger on Postgres row locks.
type TransferRepository struct {
	db *DB
}

func NewTransferRepository(db *DB) *TransferRepository {
	return &TransferRepository{db: db}
}

const lockAccountQuery = `
	SELECT id, user_id, name, kind, currency, balance, description, archived, created_at, updated_at
	FROM accounts
	WHERE id = $1
	FOR UPDATE
`

func lockAccount(ctx context.Context, tx *sql.Tx, id string) (*account.Account, error) {
	var acc account.Account
	err := tx.QueryRowContext(ctx, lockAccountQuery, id).Scan(
		&acc.ID, &acc.UserID, &acc.Name, &acc.Kind, &acc.Currency,
		&acc.Balance, &acc.Description, &acc.Archived, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	return &acc, nil
}

// Transfer locks both account rows in ascending ID order so concurrent
// transfers over the same pair cannot deadlock, runs the caller's check on
// the locked state, then writes both balance updates and both legs before
// committing.
func (r *TransferRepository) Transfer(ctx context.Context, params transfer.LedgerParams, check transfer.CheckFunc) (*transfer.LedgerEntry, error) {
	var entry *transfer.LedgerEntry

	err := r.db.WithinTx(ctx, "db.Transfer", func(tx *sql.Tx) error {
		first, second := params.FromAccountID, params.ToAccountID
		if second < first {
			first, second = second, first
		}

		locked := make(map[string]*account.Account, 2)
		for _, id := range []string{first, second} {
			acc, err := lockAccount(ctx, tx, id)
			if err != nil {
				return err
			}
			locked[id] = acc
		}
		from := locked[params.FromAccountID]
		to := locked[params.ToAccountID]

		credit, err := check(from, to)
		if err != nil {
			return err
		}

		updateBalance := `UPDATE accounts SET balance = balance + $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
		if _, err := tx.ExecContext(ctx, updateBalance, -params.Amount, from.ID); err != nil {
			return fmt.Errorf("failed to debit source account: %w", err)
		}
		if _, err := tx.ExecContext(ctx, updateBalance, credit, to.ID); err != nil {
			return fmt.Errorf("failed to credit destination account: %w", err)
		}

		insertLeg := `
			INSERT INTO transactions (id, account_id, type, amount, currency, description, transaction_date, transfer_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		debitID := uuid.NewString()
		creditID := uuid.NewString()
		_, err = tx.ExecContext(
			ctx, insertLeg,
			debitID, from.ID, transaction.TypeExpense, params.Amount, from.Currency,
			params.Description, params.Date, params.TransferID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert debit leg: %w", err)
		}
		_, err = tx.ExecContext(
			ctx, insertLeg,
			creditID, to.ID, transaction.TypeIncome, credit, to.Currency,
			params.Description, params.Date, params.TransferID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert credit leg: %w", err)
		}

		entry = &transfer.LedgerEntry{
			DebitTransactionID:  debitID,
			CreditTransactionID: creditID,
			FromBalance:         from.Balance - params.Amount,
			ToBalance:           to.Balance + credit,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}
