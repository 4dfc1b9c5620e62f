package category

import (
	"context"
	"errors"
	"testing"
)

type mockRepo struct {
	categories map[int64]*Category
	created    *CreateParams
	deleted    []int64
}

func (m *mockRepo) Create(ctx context.Context, params CreateParams) (*Category, error) {
	m.created = &params
	return &Category{ID: 1, UserID: params.UserID, Name: params.Name, Kind: params.Kind, Color: params.Color}, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Category, error) {
	cat, ok := m.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return cat, nil
}

func (m *mockRepo) ListByUserID(ctx context.Context, userID int64) ([]*Category, error) {
	var out []*Category
	for _, cat := range m.categories {
		if cat.UserID == userID {
			out = append(out, cat)
		}
	}
	return out, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, params UpdateParams) (*Category, error) {
	cat := m.categories[id]
	if params.Name != nil {
		cat.Name = *params.Name
	}
	if params.Color != nil {
		cat.Color = *params.Color
	}
	return cat, nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestCreateCategoryValidation(t *testing.T) {
	repo := &mockRepo{categories: map[int64]*Category{}}
	service := NewService(repo)

	_, err := service.CreateCategory(context.Background(), CreateParams{UserID: 1, Name: "Groceries", Kind: "snacks"})
	if !errors.Is(err, ErrInvalidKind) {
		t.Errorf("expected ErrInvalidKind, got %v", err)
	}

	_, err = service.CreateCategory(context.Background(), CreateParams{UserID: 1, Kind: KindExpense})
	if err == nil {
		t.Error("expected error for empty name")
	}

	cat, err := service.CreateCategory(context.Background(), CreateParams{UserID: 1, Name: "Groceries", Kind: KindExpense, Color: "#22c55e"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Kind != KindExpense || cat.Name != "Groceries" {
		t.Errorf("unexpected category: %+v", cat)
	}
}

func TestCategoryOwnership(t *testing.T) {
	repo := &mockRepo{categories: map[int64]*Category{
		10: {ID: 10, UserID: 2, Name: "Rent", Kind: KindExpense},
	}}
	service := NewService(repo)

	if _, err := service.GetCategory(context.Background(), 10, 1); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for foreign category, got %v", err)
	}
	if _, err := service.GetCategory(context.Background(), 99, 1); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}

	name := "Housing"
	if _, err := service.UpdateCategory(context.Background(), 10, 1, UpdateParams{Name: &name}); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden on update, got %v", err)
	}
	if err := service.DeleteCategory(context.Background(), 10, 1); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden on delete, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Error("delete must not reach the repository on ownership failure")
	}

	if err := service.DeleteCategory(context.Background(), 10, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 10 {
		t.Errorf("expected category 10 deleted, got %v", repo.deleted)
	}
}
