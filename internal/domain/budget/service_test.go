package budget

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"centavo/internal/domain/currency"
	"centavo/internal/domain/transaction"
)

type mockRepo struct {
	budgets []*Budget
}

func (m *mockRepo) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	return nil, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Budget, error) {
	for _, b := range m.budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrBudgetNotFound
}

func (m *mockRepo) ListByUserID(ctx context.Context, userID int64, period string) ([]*Budget, error) {
	return m.budgets, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, params UpdateParams) (*Budget, error) {
	return nil, nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

type mockTxRepo struct {
	transaction.Repository
	sums []transaction.CurrencySum
}

func (m *mockTxRepo) SumExpensesByCategory(ctx context.Context, userID, categoryID int64, from, to time.Time) ([]transaction.CurrencySum, error) {
	return m.sums, nil
}

type staticRates struct {
	snap *currency.Snapshot
	err  error
}

func (s *staticRates) Current(ctx context.Context) (*currency.Snapshot, error) {
	return s.snap, s.err
}

func TestPeriodBounds(t *testing.T) {
	from, to, err := PeriodBounds("2026-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from.Month() != time.February || from.Day() != 1 {
		t.Errorf("expected Feb 1 start, got %v", from)
	}
	if to.Month() != time.March {
		t.Errorf("expected March upper bound, got %v", to)
	}

	for _, bad := range []string{"", "2026", "02-2026", "2026-13"} {
		if _, _, err := PeriodBounds(bad); err == nil {
			t.Errorf("expected error for period %q", bad)
		}
	}
}

func TestListStatusesConvertsSpending(t *testing.T) {
	repo := &mockRepo{budgets: []*Budget{
		{ID: 1, UserID: 1, CategoryID: 10, Period: "2026-08", Limit: 50000},
	}}
	txRepo := &mockTxRepo{sums: []transaction.CurrencySum{
		{Currency: "USD", Total: 10000},
		{Currency: "EUR", Total: 900},
	}}
	rates := &staticRates{snap: currency.NewSnapshot("USD", map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.90"),
	}, time.Now())}

	service := NewService(repo, txRepo, rates)

	statuses, err := service.ListStatuses(context.Background(), 1, "USD", "2026-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}

	// 10000 USD + 900 EUR at 0.90 -> 1000 USD = 11000 spent
	if statuses[0].Spent != 11000 {
		t.Errorf("expected spent 11000, got %d", statuses[0].Spent)
	}
	if statuses[0].Remaining != 39000 {
		t.Errorf("expected remaining 39000, got %d", statuses[0].Remaining)
	}
	if statuses[0].RateIncomplete {
		t.Error("did not expect rateIncomplete flag")
	}
}

func TestListStatusesFlagsMissingRates(t *testing.T) {
	repo := &mockRepo{budgets: []*Budget{
		{ID: 1, UserID: 1, CategoryID: 10, Period: "2026-08", Limit: 50000},
	}}
	txRepo := &mockTxRepo{sums: []transaction.CurrencySum{
		{Currency: "USD", Total: 10000},
		{Currency: "CHF", Total: 2000}, // not in snapshot
	}}
	rates := &staticRates{snap: currency.NewSnapshot("USD", map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
	}, time.Now())}

	service := NewService(repo, txRepo, rates)

	statuses, err := service.ListStatuses(context.Background(), 1, "USD", "2026-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CHF spending is excluded, not silently counted at face value
	if statuses[0].Spent != 10000 {
		t.Errorf("expected spent 10000, got %d", statuses[0].Spent)
	}
	if !statuses[0].RateIncomplete {
		t.Error("expected rateIncomplete flag when a currency has no rate")
	}
}
