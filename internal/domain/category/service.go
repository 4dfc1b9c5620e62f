package category

import "context"

// Service contains the business logic for category operations
type Service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateCategory creates a new category with validation
func (s *Service) CreateCategory(ctx context.Context, params CreateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

// GetCategory retrieves a category and verifies ownership
func (s *Service) GetCategory(ctx context.Context, id, userID int64) (*Category, error) {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat.UserID != userID {
		return nil, ErrForbidden
	}
	return cat, nil
}

// ListCategories retrieves all categories for a user
func (s *Service) ListCategories(ctx context.Context, userID int64) ([]*Category, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// UpdateCategory applies a partial update after verifying ownership
func (s *Service) UpdateCategory(ctx context.Context, id, userID int64, params UpdateParams) (*Category, error) {
	if _, err := s.GetCategory(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, params)
}

// DeleteCategory deletes a category after verifying ownership.
// Transactions keep running with a null category reference.
func (s *Service) DeleteCategory(ctx context.Context, id, userID int64) error {
	if _, err := s.GetCategory(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
