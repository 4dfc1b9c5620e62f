package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centavo/internal/domain/account"
	"centavo/internal/domain/currency"
)

type stubAccountRepo struct {
	account.Repository
	accounts []*account.Account
}

func (s *stubAccountRepo) ListByUserID(ctx context.Context, userID int64) ([]*account.Account, error) {
	return s.accounts, nil
}

type staticRates struct {
	snap *currency.Snapshot
	err  error
}

func (s *staticRates) Current(ctx context.Context) (*currency.Snapshot, error) {
	return s.snap, s.err
}

func TestBuildSummaryNetWorth(t *testing.T) {
	repo := &stubAccountRepo{accounts: []*account.Account{
		{ID: "acc-1", UserID: 1, Name: "Checking", Kind: account.KindBank, Currency: "USD", Balance: 100000},
		{ID: "acc-2", UserID: 1, Name: "Savings", Kind: account.KindSavings, Currency: "EUR", Balance: 9000},
	}}
	rates := &staticRates{snap: currency.NewSnapshot("USD", map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.90"),
	}, time.Now())}

	service := NewService(repo, rates)

	summary, err := service.BuildSummary(context.Background(), 1, "USD")
	require.NoError(t, err)
	require.Len(t, summary.Accounts, 2)

	// 100000 USD + 9000 EUR at 0.90 -> 10000 USD
	assert.Equal(t, int64(110000), summary.NetWorth)
	assert.False(t, summary.Incomplete)
	require.NotNil(t, summary.Accounts[1].Converted)
	assert.Equal(t, int64(10000), *summary.Accounts[1].Converted)
	require.NotNil(t, summary.RatesFetchedAt)
}

func TestBuildSummaryFlagsUnconvertible(t *testing.T) {
	repo := &stubAccountRepo{accounts: []*account.Account{
		{ID: "acc-1", UserID: 1, Currency: "USD", Balance: 100000},
		{ID: "acc-2", UserID: 1, Currency: "CHF", Balance: 5000},
	}}
	rates := &staticRates{snap: currency.NewSnapshot("USD", map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
	}, time.Now())}

	service := NewService(repo, rates)

	summary, err := service.BuildSummary(context.Background(), 1, "USD")
	require.NoError(t, err)

	// The CHF balance shows up raw, flagged, and stays out of the total
	assert.Equal(t, int64(100000), summary.NetWorth)
	assert.True(t, summary.Incomplete)
	assert.True(t, summary.Accounts[1].RateUnavailable)
	assert.Nil(t, summary.Accounts[1].Converted)
	assert.Equal(t, int64(5000), summary.Accounts[1].Balance)
}

func TestBuildSummarySkipsArchived(t *testing.T) {
	repo := &stubAccountRepo{accounts: []*account.Account{
		{ID: "acc-1", UserID: 1, Currency: "USD", Balance: 100000},
		{ID: "acc-2", UserID: 1, Currency: "USD", Balance: 99999, Archived: true},
	}}
	rates := &staticRates{snap: currency.NewSnapshot("USD", map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
	}, time.Now())}

	service := NewService(repo, rates)

	summary, err := service.BuildSummary(context.Background(), 1, "USD")
	require.NoError(t, err)
	require.Len(t, summary.Accounts, 1)
	assert.Equal(t, int64(100000), summary.NetWorth)
}

func TestBuildSummarySnapshotFetchFails(t *testing.T) {
	repo := &stubAccountRepo{accounts: []*account.Account{
		{ID: "acc-1", UserID: 1, Currency: "USD", Balance: 100000},
		{ID: "acc-2", UserID: 1, Currency: "EUR", Balance: 9000},
	}}
	rates := &staticRates{err: errors.New("provider down")}

	service := NewService(repo, rates)

	summary, err := service.BuildSummary(context.Background(), 1, "USD")
	require.NoError(t, err)

	// Same-currency rows still convert, cross-currency rows are flagged
	assert.Equal(t, int64(100000), summary.NetWorth)
	assert.True(t, summary.Incomplete)
	assert.True(t, summary.Accounts[1].RateUnavailable)
	assert.Nil(t, summary.RatesFetchedAt)
}
