package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"centavo/internal/domain/recurring"
)

type RecurringRepository struct {
	db *DB
}

func NewRecurringRepository(db *DB) *RecurringRepository {
	return &RecurringRepository{db: db}
}

const recurringColumns = `id, user_id, account_id, category_id, type, amount, description, recurrence_interval, next_run, active, created_at, updated_at`

func scanRecurring(scan func(dest ...any) error) (*recurring.RecurringTransaction, error) {
	var rec recurring.RecurringTransaction
	var categoryID sql.NullInt64

	err := scan(
		&rec.ID, &rec.UserID, &rec.AccountID, &categoryID, &rec.Type, &rec.Amount,
		&rec.Description, &rec.Interval, &rec.NextRun, &rec.Active, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		rec.CategoryID = &categoryID.Int64
	}
	return &rec, nil
}

func (r *RecurringRepository) Create(ctx context.Context, params recurring.CreateParams) (*recurring.RecurringTransaction, error) {
	query := `
		INSERT INTO recurring_transactions (user_id, account_id, category_id, type, amount, description, recurrence_interval, next_run, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING ` + recurringColumns

	rec, err := scanRecurring(r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.AccountID, params.CategoryID, params.Type,
		params.Amount, params.Description, params.Interval, params.FirstRun,
	).Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to create recurring transaction: %w", err)
	}

	return rec, nil
}

func (r *RecurringRepository) GetByID(ctx context.Context, id int64) (*recurring.RecurringTransaction, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_transactions WHERE id = $1`

	rec, err := scanRecurring(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, recurring.ErrRecurringNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring transaction: %w", err)
	}

	return rec, nil
}

func (r *RecurringRepository) ListByUserID(ctx context.Context, userID int64) ([]*recurring.RecurringTransaction, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_transactions
		WHERE user_id = $1
		ORDER BY next_run ASC
	`

	return r.queryList(ctx, query, userID)
}

func (r *RecurringRepository) ListDue(ctx context.Context, userID int64, asOf time.Time) ([]*recurring.RecurringTransaction, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_transactions
		WHERE user_id = $1 AND active AND next_run <= $2
		ORDER BY next_run ASC
	`

	return r.queryList(ctx, query, userID, asOf)
}

func (r *RecurringRepository) queryList(ctx context.Context, query string, args ...any) ([]*recurring.RecurringTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring transactions: %w", err)
	}
	defer rows.Close()

	var recs []*recurring.RecurringTransaction
	for rows.Next() {
		rec, err := scanRecurring(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring transaction: %w", err)
		}
		recs = append(recs, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring transactions: %w", err)
	}

	return recs, nil
}

func (r *RecurringRepository) ListUserIDsWithDue(ctx context.Context, asOf time.Time) ([]int64, error) {
	query := `
		SELECT DISTINCT user_id
		FROM recurring_transactions
		WHERE active AND next_run <= $1
	`

	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with due entries: %w", err)
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user ids: %w", err)
	}

	return userIDs, nil
}

func (r *RecurringRepository) Update(ctx context.Context, id int64, params recurring.UpdateParams) (*recurring.RecurringTransaction, error) {
	query := `
		UPDATE recurring_transactions
		SET category_id = COALESCE($1, category_id),
		    amount = COALESCE($2, amount),
		    description = COALESCE($3, description),
		    recurrence_interval = COALESCE($4, recurrence_interval),
		    next_run = COALESCE($5, next_run),
		    active = COALESCE($6, active),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING ` + recurringColumns

	rec, err := scanRecurring(r.db.QueryRowContext(
		ctx, query,
		params.CategoryID, params.Amount, params.Description, params.Interval,
		params.NextRun, params.Active, id,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, recurring.ErrRecurringNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update recurring transaction: %w", err)
	}

	return rec, nil
}

func (r *RecurringRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM recurring_transactions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete recurring transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return recurring.ErrRecurringNotFound
	}

	return nil
}
