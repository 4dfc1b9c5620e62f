package currency

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testSnapshot() *Snapshot {
	return NewSnapshot("USD", map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.90"),
		"JPY": decimal.RequireFromString("147.25"),
	}, time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC))
}

func TestConvert(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name     string
		amount   int64
		from, to string
		want     int64
	}{
		{"same currency is exact", 12345, "USD", "USD", 12345},
		{"usd to eur", 5000, "USD", "EUR", 4500},
		{"eur to usd", 900, "EUR", "USD", 1000},
		{"via base cross rate", 9000, "EUR", "JPY", 1472500},
		{"zero amount", 0, "USD", "EUR", 0},
		{"negative balance converts", -5000, "USD", "EUR", -4500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.amount, tt.from, tt.to, snap)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Convert(%d, %s, %s) = %d, want %d", tt.amount, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvertRoundsHalfAwayFromZero(t *testing.T) {
	snap := NewSnapshot("USD", map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.905"),
	}, time.Now())

	// 1 * 0.905 = 0.905 -> 1
	got, err := Convert(1, "USD", "EUR", snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("expected 0.905 to round to 1, got %d", got)
	}

	got, err = Convert(-1, "USD", "EUR", snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != -1 {
		t.Errorf("expected -0.905 to round to -1, got %d", got)
	}
}

func TestConvertCaseInsensitiveCodes(t *testing.T) {
	snap := testSnapshot()

	// Identity path must not depend on casing, even without a snapshot
	got, err := Convert(12345, "usd", "USD", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 12345 {
		t.Errorf("expected identity conversion, got %d", got)
	}

	got, err = Convert(5000, "usd", "eur", snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4500 {
		t.Errorf("Convert(5000, usd, eur) = %d, want 4500", got)
	}

	// Lowercase codes from the provider still resolve
	lower := NewSnapshot("usd", map[string]decimal.Decimal{
		"eur": decimal.RequireFromString("0.90"),
	}, time.Now())
	got, err = Convert(900, "EUR", "USD", lower)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1000 {
		t.Errorf("Convert(900, EUR, USD) = %d, want 1000", got)
	}
}

func TestConvertRoundTripWithinOneMinorUnit(t *testing.T) {
	snap := testSnapshot()

	amounts := []int64{1, 7, 99, 12345, 999999, -12345}
	pairs := [][2]string{{"USD", "EUR"}, {"USD", "JPY"}, {"EUR", "JPY"}}

	for _, pair := range pairs {
		for _, amount := range amounts {
			there, err := Convert(amount, pair[0], pair[1], snap)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			back, err := Convert(there, pair[1], pair[0], snap)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			drift := back - amount
			if drift < -1 || drift > 1 {
				t.Errorf("round trip %d %s->%s->%s = %d, drift %d exceeds one minor unit",
					amount, pair[0], pair[1], pair[0], back, drift)
			}
		}
	}
}

func TestConvertMissingRate(t *testing.T) {
	snap := testSnapshot()

	if _, err := Convert(100, "CHF", "USD", snap); !errors.Is(err, ErrRateUnavailable) {
		t.Errorf("expected ErrRateUnavailable for unknown source, got %v", err)
	}
	if _, err := Convert(100, "USD", "CHF", snap); !errors.Is(err, ErrRateUnavailable) {
		t.Errorf("expected ErrRateUnavailable for unknown destination, got %v", err)
	}
}

func TestConvertNilSnapshot(t *testing.T) {
	// Same currency never needs a snapshot
	got, err := Convert(4200, "USD", "USD", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4200 {
		t.Errorf("expected 4200, got %d", got)
	}

	if _, err := Convert(100, "USD", "EUR", nil); !errors.Is(err, ErrRateUnavailable) {
		t.Errorf("expected ErrRateUnavailable with nil snapshot, got %v", err)
	}
}

func TestSnapshotCopiesRates(t *testing.T) {
	rates := map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.90")}
	snap := NewSnapshot("USD", rates, time.Now())

	rates["EUR"] = decimal.NewFromInt(99)

	rate, ok := snap.Rate("EUR")
	if !ok {
		t.Fatal("expected EUR rate")
	}
	if !rate.Equal(decimal.RequireFromString("0.90")) {
		t.Errorf("snapshot rate mutated: got %s", rate)
	}
}
