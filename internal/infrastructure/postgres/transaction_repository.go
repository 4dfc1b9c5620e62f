package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"centavo/internal/domain/account"
	"centavo/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, account_id, category_id, type, amount, currency, description, transaction_date, transfer_id, created_at, updated_at`

func scanTransaction(scan func(dest ...any) error) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var categoryID sql.NullInt64
	var transferID sql.NullString

	err := scan(
		&tx.ID, &tx.AccountID, &categoryID, &tx.Type, &tx.Amount, &tx.Currency,
		&tx.Description, &tx.Date, &transferID, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		tx.CategoryID = &categoryID.Int64
	}
	if transferID.Valid {
		tx.TransferID = &transferID.String
	}
	return &tx, nil
}

// Create inserts the transaction row and applies its signed amount to the
// owning account's balance in one database transaction.
func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	var created *transaction.Transaction

	err := r.db.WithinTx(ctx, "db.Transaction.Create", func(tx *sql.Tx) error {
		insert := `
			INSERT INTO transactions (id, account_id, category_id, type, amount, currency, description, transaction_date)
			SELECT $1, a.id, $3, $4, $5, a.currency, $6, $7
			FROM accounts a WHERE a.id = $2
			RETURNING ` + transactionColumns

		row := tx.QueryRowContext(
			ctx, insert,
			uuid.NewString(), params.AccountID, params.CategoryID, params.Type,
			params.Amount, params.Description, params.Date,
		)
		result, err := scanTransaction(row.Scan)
		if errors.Is(err, sql.ErrNoRows) {
			// The INSERT..SELECT found no account row
			return account.ErrAccountNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		update := `UPDATE accounts SET balance = balance + $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
		if _, err := tx.ExecContext(ctx, update, result.Signed(), params.AccountID); err != nil {
			return fmt.Errorf("failed to apply balance delta: %w", err)
		}

		created = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	result, err := scanTransaction(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return result, nil
}

// filterClause builds the WHERE tail shared by ListByUserID and
// CountByUserID. $1 is always the user ID.
func filterClause(filter transaction.ListFilter) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, 5)

	next := func() string {
		return "$" + strconv.Itoa(len(args)+2)
	}
	if filter.AccountID != nil {
		b.WriteString(" AND t.account_id = " + next())
		args = append(args, *filter.AccountID)
	}
	if filter.CategoryID != nil {
		b.WriteString(" AND t.category_id = " + next())
		args = append(args, *filter.CategoryID)
	}
	if filter.From != nil {
		b.WriteString(" AND t.transaction_date >= " + next())
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		b.WriteString(" AND t.transaction_date < " + next())
		args = append(args, *filter.To)
	}
	return b.String(), args
}

func (r *TransactionRepository) ListByUserID(ctx context.Context, userID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	clause, args := filterClause(filter)
	query := `
		SELECT t.id, t.account_id, t.category_id, t.type, t.amount, t.currency,
		       t.description, t.transaction_date, t.transfer_id, t.created_at, t.updated_at
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1` + clause + `
		ORDER BY t.transaction_date DESC, t.created_at DESC
		LIMIT ` + strconv.Itoa(filter.Limit) + ` OFFSET ` + strconv.Itoa(filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, append([]any{userID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

func (r *TransactionRepository) CountByUserID(ctx context.Context, userID int64, filter transaction.ListFilter) (int64, error) {
	clause, args := filterClause(filter)
	query := `
		SELECT COUNT(*)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1` + clause

	var count int64
	err := r.db.QueryRowContext(ctx, query, append([]any{userID}, args...)...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return count, nil
}

// Update rewrites the row and replaces its old balance contribution with the
// new one, all in one database transaction.
func (r *TransactionRepository) Update(ctx context.Context, id string, params transaction.UpdateParams) (*transaction.Transaction, error) {
	var updated *transaction.Transaction

	err := r.db.WithinTx(ctx, "db.Transaction.Update", func(tx *sql.Tx) error {
		lock := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`
		before, err := scanTransaction(tx.QueryRowContext(ctx, lock, id).Scan)
		if errors.Is(err, sql.ErrNoRows) {
			return transaction.ErrTransactionNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock transaction: %w", err)
		}

		var categoryArg any
		if params.ClearCategory {
			categoryArg = nil
		} else if params.CategoryID != nil {
			categoryArg = *params.CategoryID
		} else if before.CategoryID != nil {
			categoryArg = *before.CategoryID
		}

		update := `
			UPDATE transactions
			SET category_id = $1,
			    type = COALESCE($2, type),
			    amount = COALESCE($3, amount),
			    description = COALESCE($4, description),
			    transaction_date = COALESCE($5, transaction_date),
			    updated_at = CURRENT_TIMESTAMP
			WHERE id = $6
			RETURNING ` + transactionColumns

		after, err := scanTransaction(tx.QueryRowContext(
			ctx, update,
			categoryArg, params.Type, params.Amount, params.Description, params.Date, id,
		).Scan)
		if err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		if delta := after.Signed() - before.Signed(); delta != 0 {
			balance := `UPDATE accounts SET balance = balance + $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
			if _, err := tx.ExecContext(ctx, balance, delta, after.AccountID); err != nil {
				return fmt.Errorf("failed to apply balance delta: %w", err)
			}
		}

		updated = after
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the row and reverses its balance contribution in one
// database transaction.
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithinTx(ctx, "db.Transaction.Delete", func(tx *sql.Tx) error {
		remove := `DELETE FROM transactions WHERE id = $1 RETURNING ` + transactionColumns
		removed, err := scanTransaction(tx.QueryRowContext(ctx, remove, id).Scan)
		if errors.Is(err, sql.ErrNoRows) {
			return transaction.ErrTransactionNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}

		balance := `UPDATE accounts SET balance = balance - $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
		if _, err := tx.ExecContext(ctx, balance, removed.Signed(), removed.AccountID); err != nil {
			return fmt.Errorf("failed to reverse balance delta: %w", err)
		}

		return nil
	})
}

func (r *TransactionRepository) SumExpensesByCategory(ctx context.Context, userID, categoryID int64, from, to time.Time) ([]transaction.CurrencySum, error) {
	query := `
		SELECT t.currency, COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1
		  AND t.category_id = $2
		  AND t.type = 'expense'
		  AND t.transaction_date >= $3
		  AND t.transaction_date < $4
		GROUP BY t.currency
	`

	rows, err := r.db.QueryContext(ctx, query, userID, categoryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	defer rows.Close()

	var sums []transaction.CurrencySum
	for rows.Next() {
		var s transaction.CurrencySum
		if err := rows.Scan(&s.Currency, &s.Total); err != nil {
			return nil, fmt.Errorf("failed to scan expense sum: %w", err)
		}
		sums = append(sums, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense sums: %w", err)
	}

	return sums, nil
}
