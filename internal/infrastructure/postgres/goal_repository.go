package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"centavo/internal/domain/goal"
)

type GoalRepository struct {
	db *DB
}

func NewGoalRepository(db *DB) *GoalRepository {
	return &GoalRepository{db: db}
}

const goalColumns = `id, user_id, name, target_amount, currency, account_id, deadline, created_at, updated_at`

func scanGoal(scan func(dest ...any) error) (*goal.Goal, error) {
	var g goal.Goal
	var accountID sql.NullString
	var deadline sql.NullTime

	err := scan(
		&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.Currency,
		&accountID, &deadline, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if accountID.Valid {
		g.AccountID = &accountID.String
	}
	if deadline.Valid {
		g.Deadline = &deadline.Time
	}
	return &g, nil
}

func (r *GoalRepository) Create(ctx context.Context, params goal.CreateParams) (*goal.Goal, error) {
	query := `
		INSERT INTO goals (user_id, name, target_amount, currency, account_id, deadline)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + goalColumns

	g, err := scanGoal(r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.Name, params.TargetAmount, params.Currency,
		params.AccountID, params.Deadline,
	).Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return g, nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id int64) (*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1`

	g, err := scanGoal(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goal.ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return g, nil
}

func (r *GoalRepository) ListByUserID(ctx context.Context, userID int64) ([]*goal.Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}

func (r *GoalRepository) Update(ctx context.Context, id int64, params goal.UpdateParams) (*goal.Goal, error) {
	query := `
		UPDATE goals
		SET name = COALESCE($1, name),
		    target_amount = COALESCE($2, target_amount),
		    account_id = CASE WHEN $3 THEN NULL ELSE COALESCE($4, account_id) END,
		    deadline = COALESCE($5, deadline),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING ` + goalColumns

	g, err := scanGoal(r.db.QueryRowContext(
		ctx, query,
		params.Name, params.TargetAmount, params.ClearAccount, params.AccountID,
		params.Deadline, id,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goal.ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return g, nil
}

func (r *GoalRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM goals WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return goal.ErrGoalNotFound
	}

	return nil
}
