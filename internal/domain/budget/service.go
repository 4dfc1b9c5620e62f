package budget

import (
	"context"
	"log"

	"centavo/internal/domain/currency"
	"centavo/internal/domain/transaction"
)

// Service contains the business logic for budget operations
type Service struct {
	repo         Repository
	transactions transaction.Repository
	rates        currency.SnapshotSource
}

// NewService creates a new budget service
func NewService(repo Repository, transactions transaction.Repository, rates currency.SnapshotSource) *Service {
	return &Service{repo: repo, transactions: transactions, rates: rates}
}

// CreateBudget creates a new budget with validation
func (s *Service) CreateBudget(ctx context.Context, params CreateParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

// GetBudget retrieves a budget and verifies ownership
func (s *Service) GetBudget(ctx context.Context, id, userID int64) (*Budget, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

// UpdateBudget applies a partial update after verifying ownership
func (s *Service) UpdateBudget(ctx context.Context, id, userID int64, params UpdateParams) (*Budget, error) {
	if params.Limit != nil && *params.Limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if _, err := s.GetBudget(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, params)
}

// DeleteBudget deletes a budget after verifying ownership
func (s *Service) DeleteBudget(ctx context.Context, id, userID int64) error {
	if _, err := s.GetBudget(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListStatuses returns the user's budgets for a period with spending so far
// converted into displayCurrency. Spending in a currency missing from the
// rate snapshot is left out of the total and flagged, never silently counted
// at face value.
func (s *Service) ListStatuses(ctx context.Context, userID int64, displayCurrency, period string) ([]*Status, error) {
	if period != "" {
		if _, _, err := PeriodBounds(period); err != nil {
			return nil, err
		}
	}

	budgets, err := s.repo.ListByUserID(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return []*Status{}, nil
	}

	snap, snapErr := s.rates.Current(ctx)
	if snapErr != nil {
		log.Printf("Budget: rate snapshot unavailable, totals may be incomplete: %v", snapErr)
	}

	statuses := make([]*Status, 0, len(budgets))
	for _, b := range budgets {
		from, to, err := PeriodBounds(b.Period)
		if err != nil {
			return nil, err
		}

		sums, err := s.transactions.SumExpensesByCategory(ctx, userID, b.CategoryID, from, to)
		if err != nil {
			return nil, err
		}

		status := &Status{Budget: *b}
		for _, sum := range sums {
			if snapErr != nil && sum.Currency != displayCurrency {
				status.RateIncomplete = true
				continue
			}
			converted, err := currency.Convert(sum.Total, sum.Currency, displayCurrency, snap)
			if err != nil {
				status.RateIncomplete = true
				continue
			}
			status.Spent += converted
		}
		status.Remaining = status.Limit - status.Spent
		statuses = append(statuses, status)
	}

	return statuses, nil
}
