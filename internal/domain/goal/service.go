package goal

import (
	"context"
	"errors"

	"centavo/internal/domain/account"
	"centavo/internal/domain/currency"
)

// Service contains the business logic for savings goals
type Service struct {
	repo     Repository
	accounts account.Repository
	rates    currency.SnapshotSource
}

// NewService creates a new goal service
func NewService(repo Repository, accounts account.Repository, rates currency.SnapshotSource) *Service {
	return &Service{repo: repo, accounts: accounts, rates: rates}
}

// Create registers a goal. A linked account must belong to the same user and
// defaults the goal currency when none is given.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Goal, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if params.AccountID != nil {
		acc, err := s.accounts.GetByID(ctx, *params.AccountID)
		if err != nil {
			return nil, err
		}
		if acc.UserID != params.UserID {
			return nil, account.ErrAccountNotFound
		}
		if params.Currency == "" {
			params.Currency = acc.Currency
		}
	}
	if params.Currency == "" {
		params.Currency = "USD"
	}

	return s.repo.Create(ctx, params)
}

// Get retrieves a goal and verifies ownership
func (s *Service) Get(ctx context.Context, id, userID int64) (*Goal, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.UserID != userID {
		return nil, ErrForbidden
	}
	return g, nil
}

// List retrieves all goals for a user
func (s *Service) List(ctx context.Context, userID int64) ([]*Goal, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Update applies a partial update after verifying ownership
func (s *Service) Update(ctx context.Context, id, userID int64, params UpdateParams) (*Goal, error) {
	if params.TargetAmount != nil && *params.TargetAmount <= 0 {
		return nil, ErrInvalidTarget
	}
	if _, err := s.Get(ctx, id, userID); err != nil {
		return nil, err
	}
	if params.AccountID != nil {
		acc, err := s.accounts.GetByID(ctx, *params.AccountID)
		if err != nil {
			return nil, err
		}
		if acc.UserID != userID {
			return nil, account.ErrAccountNotFound
		}
	}
	return s.repo.Update(ctx, id, params)
}

// Delete removes a goal after verifying ownership
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListProgress returns every goal with its current progress. Goals without a
// linked account report zero progress. When the linked account's currency has
// no rate the goal is flagged instead of counted at face value.
func (s *Service) ListProgress(ctx context.Context, userID int64) ([]*Progress, error) {
	goals, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var snap *currency.Snapshot
	if len(goals) > 0 {
		// A stale or missing snapshot only degrades cross-currency goals
		snap, _ = s.rates.Current(ctx)
	}

	progress := make([]*Progress, 0, len(goals))
	for _, g := range goals {
		p := &Progress{Goal: g}
		if g.AccountID != nil {
			acc, err := s.accounts.GetByID(ctx, *g.AccountID)
			if err != nil {
				return nil, err
			}
			current, err := currency.Convert(acc.Balance, acc.Currency, g.Currency, snap)
			switch {
			case errors.Is(err, currency.ErrRateUnavailable):
				p.RateUnavailable = true
			case err != nil:
				return nil, err
			default:
				p.Current = current
			}
		}
		if g.TargetAmount > 0 && !p.RateUnavailable {
			p.Percent = float64(p.Current) / float64(g.TargetAmount) * 100
			p.Achieved = p.Current >= g.TargetAmount
		}
		progress = append(progress, p)
	}

	return progress, nil
}
