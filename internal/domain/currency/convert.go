package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrRateUnavailable means a conversion could not be priced: the snapshot is
// missing entirely or has no rate for one of the currencies involved.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// Convert reprices an amount of minor units from one currency into another
// using the given snapshot. Currency codes are case-insensitive.
// Same-currency conversions are exact and need no snapshot at all.
// Cross-currency amounts go through the base currency and round half away
// from zero to the nearest minor unit.
func Convert(amount int64, from, to string, snap *Snapshot) (int64, error) {
	if strings.EqualFold(from, to) {
		return amount, nil
	}
	if snap == nil {
		return 0, fmt.Errorf("%w: no snapshot for %s->%s", ErrRateUnavailable, from, to)
	}

	fromRate, ok := snap.Rate(from)
	if !ok || fromRate.IsZero() {
		return 0, fmt.Errorf("%w: no rate for %s", ErrRateUnavailable, from)
	}
	toRate, ok := snap.Rate(to)
	if !ok {
		return 0, fmt.Errorf("%w: no rate for %s", ErrRateUnavailable, to)
	}

	converted := decimal.NewFromInt(amount).Mul(toRate).Div(fromRate).Round(0)
	return converted.IntPart(), nil
}
