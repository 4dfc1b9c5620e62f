package transaction

import (
	"context"
	"time"

	"centavo/internal/domain/account"
)

// Service contains the business logic for transaction operations
type Service struct {
	repo     Repository
	accounts account.Repository
}

// NewService creates a new transaction service
func NewService(repo Repository, accounts account.Repository) *Service {
	return &Service{repo: repo, accounts: accounts}
}

// CreateTransaction records a manual income or expense entry and applies it
// to the account balance.
func (s *Service) CreateTransaction(ctx context.Context, userID int64, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Date.IsZero() {
		params.Date = time.Now().UTC()
	}

	acc, err := s.accounts.GetByID(ctx, params.AccountID)
	if err != nil {
		return nil, err
	}
	if acc.UserID != userID {
		return nil, account.ErrAccountNotFound
	}

	return s.repo.Create(ctx, params)
}

// GetTransaction retrieves a transaction and verifies ownership through its account
func (s *Service) GetTransaction(ctx context.Context, id string, userID int64) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	acc, err := s.accounts.GetByID(ctx, tx.AccountID)
	if err != nil {
		return nil, err
	}
	if acc.UserID != userID {
		return nil, ErrForbidden
	}

	return tx, nil
}

// ListTransactions lists a user's transactions with optional filters
func (s *Service) ListTransactions(ctx context.Context, userID int64, filter ListFilter) ([]*Transaction, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	items, err := s.repo.ListByUserID(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountByUserID(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// UpdateTransaction edits a manual entry, re-applying the balance delta.
// Transfer legs are immutable through this path.
func (s *Service) UpdateTransaction(ctx context.Context, id string, userID int64, params UpdateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.GetTransaction(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if existing.IsTransferLeg() {
		return nil, ErrPartOfTransfer
	}

	return s.repo.Update(ctx, id, params)
}

// DeleteTransaction removes a manual entry and reverses its balance effect.
// Transfer legs are immutable through this path.
func (s *Service) DeleteTransaction(ctx context.Context, id string, userID int64) error {
	existing, err := s.GetTransaction(ctx, id, userID)
	if err != nil {
		return err
	}
	if existing.IsTransferLeg() {
		return ErrPartOfTransfer
	}

	return s.repo.Delete(ctx, id)
}
