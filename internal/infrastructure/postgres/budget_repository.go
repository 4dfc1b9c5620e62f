package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"centavo/internal/domain/budget"
)

type BudgetRepository struct {
	db *DB
}

func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(ctx context.Context, params budget.CreateParams) (*budget.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, category_id, period, spending_limit)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, category_id, period, spending_limit, created_at, updated_at
	`

	var b budget.Budget
	err := r.db.QueryRowContext(ctx, query, params.UserID, params.CategoryID, params.Period, params.Limit).Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.Period, &b.Limit, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &b, nil
}

func (r *BudgetRepository) GetByID(ctx context.Context, id int64) (*budget.Budget, error) {
	query := `
		SELECT id, user_id, category_id, period, spending_limit, created_at, updated_at
		FROM budgets
		WHERE id = $1
	`

	var b budget.Budget
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.Period, &b.Limit, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, budget.ErrBudgetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return &b, nil
}

func (r *BudgetRepository) ListByUserID(ctx context.Context, userID int64, period string) ([]*budget.Budget, error) {
	query := `
		SELECT id, user_id, category_id, period, spending_limit, created_at, updated_at
		FROM budgets
		WHERE user_id = $1 AND ($2 = '' OR period = $2)
		ORDER BY period DESC, category_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget
	for rows.Next() {
		var b budget.Budget
		err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Period, &b.Limit, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, &b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

func (r *BudgetRepository) Update(ctx context.Context, id int64, params budget.UpdateParams) (*budget.Budget, error) {
	query := `
		UPDATE budgets
		SET spending_limit = COALESCE($1, spending_limit),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING id, user_id, category_id, period, spending_limit, created_at, updated_at
	`

	var b budget.Budget
	err := r.db.QueryRowContext(ctx, query, params.Limit, id).Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.Period, &b.Limit, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, budget.ErrBudgetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return &b, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM budgets WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return budget.ErrBudgetNotFound
	}

	return nil
}
