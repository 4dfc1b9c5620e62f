package recurring

import (
	"context"
	"fmt"
	"log"
	"time"

	"centavo/internal/domain/account"
	"centavo/internal/domain/transaction"
)

// Service contains the business logic for recurring transactions
type Service struct {
	repo         Repository
	transactions transaction.Repository
	accounts     account.Repository
}

// NewService creates a new recurring transaction service
func NewService(repo Repository, transactions transaction.Repository, accounts account.Repository) *Service {
	return &Service{repo: repo, transactions: transactions, accounts: accounts}
}

// Create registers a recurring transaction after verifying account ownership
func (s *Service) Create(ctx context.Context, params CreateParams) (*RecurringTransaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	acc, err := s.accounts.GetByID(ctx, params.AccountID)
	if err != nil {
		return nil, err
	}
	if acc.UserID != params.UserID {
		return nil, account.ErrAccountNotFound
	}

	return s.repo.Create(ctx, params)
}

// Get retrieves a recurring transaction and verifies ownership
func (s *Service) Get(ctx context.Context, id, userID int64) (*RecurringTransaction, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, ErrForbidden
	}
	return rec, nil
}

// List retrieves all recurring transactions for a user
func (s *Service) List(ctx context.Context, userID int64) ([]*RecurringTransaction, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Update applies a partial update after verifying ownership
func (s *Service) Update(ctx context.Context, id, userID int64, params UpdateParams) (*RecurringTransaction, error) {
	if params.Amount != nil && *params.Amount <= 0 {
		return nil, transaction.ErrInvalidAmount
	}
	if params.Interval != nil && !IsValidInterval(*params.Interval) {
		return nil, ErrInvalidInterval
	}
	if _, err := s.Get(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, params)
}

// Delete removes a recurring transaction after verifying ownership
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// MaterializeDue creates real transactions for every due entry of one user
// and advances next_run past asOf. An entry that was down for several
// periods catches up with one transaction per missed period. Returns how
// many transactions were created.
func (s *Service) MaterializeDue(ctx context.Context, userID int64, asOf time.Time) (int, error) {
	due, err := s.repo.ListDue(ctx, userID, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to list due entries: %w", err)
	}

	created := 0
	for _, rec := range due {
		next := rec.NextRun
		for !next.After(asOf) {
			_, err := s.transactions.Create(ctx, transaction.CreateParams{
				AccountID:   rec.AccountID,
				CategoryID:  rec.CategoryID,
				Type:        rec.Type,
				Amount:      rec.Amount,
				Description: rec.Description,
				Date:        next,
			})
			if err != nil {
				// Leave next_run where it is so the entry retries next cycle
				log.Printf("Recurring: failed to materialize entry %d: %v", rec.ID, err)
				break
			}
			created++
			next = rec.Interval.NextAfter(next)
		}

		if !next.Equal(rec.NextRun) {
			if _, err := s.repo.Update(ctx, rec.ID, UpdateParams{NextRun: &next}); err != nil {
				return created, fmt.Errorf("failed to advance next_run for entry %d: %w", rec.ID, err)
			}
		}
	}

	return created, nil
}
