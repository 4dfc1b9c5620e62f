package report

import (
	"context"
	"errors"
	"time"

	"centavo/internal/domain/account"
	"centavo/internal/domain/currency"
)

// AccountBalance is one account's balance in the summary. Converted is the
// balance in the display currency, or nil with RateUnavailable set when the
// snapshot has no rate for the account's currency.
type AccountBalance struct {
	AccountID       string `json:"accountId"`
	Name            string `json:"name"`
	Kind            string `json:"kind"`
	Currency        string `json:"currency"`
	Balance         int64  `json:"balance"`
	Converted       *int64 `json:"converted,omitempty"`
	RateUnavailable bool   `json:"rateUnavailable,omitempty"`
}

// Summary aggregates every account into the user's display currency.
// NetWorth only sums accounts that could be converted; Incomplete says
// whether any were left out.
type Summary struct {
	DisplayCurrency string           `json:"displayCurrency"`
	NetWorth        int64            `json:"netWorth"`
	Incomplete      bool             `json:"incomplete,omitempty"`
	Accounts        []AccountBalance `json:"accounts"`
	RatesFetchedAt  *time.Time       `json:"ratesFetchedAt,omitempty"`
}

// Service builds balance summaries across accounts and currencies
type Service struct {
	accounts account.Repository
	rates    currency.SnapshotSource
}

// NewService creates a new report service
func NewService(accounts account.Repository, rates currency.SnapshotSource) *Service {
	return &Service{accounts: accounts, rates: rates}
}

// BuildSummary converts every non-archived account balance into the display
// currency and totals them. Accounts whose currency has no rate are reported
// unconverted and excluded from the total rather than counted at face value.
func (s *Service) BuildSummary(ctx context.Context, userID int64, displayCurrency string) (*Summary, error) {
	accounts, err := s.accounts.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// A failed fetch degrades cross-currency rows, same-currency rows still convert
	snap, _ := s.rates.Current(ctx)

	summary := &Summary{
		DisplayCurrency: displayCurrency,
		Accounts:        make([]AccountBalance, 0, len(accounts)),
	}
	if snap != nil {
		fetchedAt := snap.FetchedAt
		summary.RatesFetchedAt = &fetchedAt
	}

	for _, acc := range accounts {
		if acc.Archived {
			continue
		}
		row := AccountBalance{
			AccountID: acc.ID,
			Name:      acc.Name,
			Kind:      string(acc.Kind),
			Currency:  acc.Currency,
			Balance:   acc.Balance,
		}
		converted, err := currency.Convert(acc.Balance, acc.Currency, displayCurrency, snap)
		switch {
		case errors.Is(err, currency.ErrRateUnavailable):
			row.RateUnavailable = true
			summary.Incomplete = true
		case err != nil:
			return nil, err
		default:
			row.Converted = &converted
			summary.NetWorth += converted
		}
		summary.Accounts = append(summary.Accounts, row)
	}

	return summary, nil
}
