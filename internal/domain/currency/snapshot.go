package currency

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is an immutable view of the exchange rate table at one point in
// time. Rates are quoted against Base: one unit of Base buys Rate(code)
// units of code. Every conversion within a request uses a single snapshot so
// totals stay internally consistent even while rates refresh.
type Snapshot struct {
	Base      string
	FetchedAt time.Time

	rates map[string]decimal.Decimal
}

// NewSnapshot builds a snapshot, copying the rate table so later mutation of
// the caller's map cannot leak in. Currency codes are stored uppercased.
func NewSnapshot(base string, rates map[string]decimal.Decimal, fetchedAt time.Time) *Snapshot {
	copied := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		copied[strings.ToUpper(code)] = rate
	}
	return &Snapshot{Base: strings.ToUpper(base), FetchedAt: fetchedAt, rates: copied}
}

// Rate returns the rate for a currency code against the base. The code is
// case-insensitive.
func (s *Snapshot) Rate(code string) (decimal.Decimal, bool) {
	code = strings.ToUpper(code)
	if code == s.Base {
		return decimal.NewFromInt(1), true
	}
	rate, ok := s.rates[code]
	return rate, ok
}

// SnapshotSource provides the current rate snapshot. Implemented by the
// rates cache; services depend on this interface so tests can inject fixed
// tables.
type SnapshotSource interface {
	Current(ctx context.Context) (*Snapshot, error)
}
