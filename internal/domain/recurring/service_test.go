package recurring

import (
	"context"
	"testing"
	"time"

	"centavo/internal/domain/account"
	"centavo/internal/domain/transaction"
)

func TestIntervalNextAfter(t *testing.T) {
	base := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		interval Interval
		want     time.Time
	}{
		{IntervalDaily, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{IntervalWeekly, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)},
		{IntervalMonthly, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)}, // Jan 31 + 1 month normalizes past Feb
		{IntervalYearly, time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.interval), func(t *testing.T) {
			got := tt.interval.NextAfter(base)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

type mockRepo struct {
	Repository
	due     []*RecurringTransaction
	updates map[int64]time.Time
}

func (m *mockRepo) ListDue(ctx context.Context, userID int64, asOf time.Time) ([]*RecurringTransaction, error) {
	return m.due, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, params UpdateParams) (*RecurringTransaction, error) {
	if m.updates == nil {
		m.updates = make(map[int64]time.Time)
	}
	if params.NextRun != nil {
		m.updates[id] = *params.NextRun
	}
	return nil, nil
}

type stubAccountRepo struct {
	account.Repository
}

func (s *stubAccountRepo) GetByID(ctx context.Context, id string) (*account.Account, error) {
	return &account.Account{ID: id, UserID: 1, Currency: "USD"}, nil
}

type captureTxRepo struct {
	transaction.Repository
	created []transaction.CreateParams
}

func (c *captureTxRepo) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	c.created = append(c.created, params)
	return &transaction.Transaction{ID: "tx"}, nil
}

func TestMaterializeDueCatchesUp(t *testing.T) {
	asOf := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	repo := &mockRepo{due: []*RecurringTransaction{
		{
			ID:        1,
			UserID:    1,
			AccountID: "acc-1",
			Type:      transaction.TypeExpense,
			Amount:    999,
			Interval:  IntervalMonthly,
			NextRun:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			Active:    true,
		},
	}}
	txRepo := &captureTxRepo{}

	service := NewService(repo, txRepo, &stubAccountRepo{})

	created, err := service.MaterializeDue(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// June 15, July 15 and August 15 are all due
	if created != 3 {
		t.Fatalf("expected 3 materialized transactions, got %d", created)
	}
	if len(txRepo.created) != 3 {
		t.Fatalf("expected 3 create calls, got %d", len(txRepo.created))
	}

	wantNext := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	if got := repo.updates[1]; !got.Equal(wantNext) {
		t.Errorf("expected next_run advanced to %v, got %v", wantNext, got)
	}
}

func TestMaterializeDueNothingDue(t *testing.T) {
	repo := &mockRepo{}
	txRepo := &captureTxRepo{}
	service := NewService(repo, txRepo, &stubAccountRepo{})

	created, err := service.MaterializeDue(context.Background(), 1, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 0 || len(txRepo.created) != 0 {
		t.Error("expected no transactions to be created")
	}
}
