package rates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centavo/internal/domain/currency"
)

type fakeFetcher struct {
	snaps  []*currency.Snapshot
	errs   []error
	calls  int
	fallEr error
}

func (f *fakeFetcher) Fetch(ctx context.Context) (*currency.Snapshot, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.snaps) {
		return f.snaps[i], nil
	}
	if f.fallEr != nil {
		return nil, f.fallEr
	}
	return f.snaps[len(f.snaps)-1], nil
}

func snapshotAt(at time.Time) *currency.Snapshot {
	return currency.NewSnapshot("USD", map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.90"),
	}, at)
}

func TestCacheFetchesOnFirstUse(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{snaps: []*currency.Snapshot{snapshotAt(now)}}

	cache := NewCache(fetcher, time.Hour)
	cache.nowFn = func() time.Time { return now }

	snap, err := cache.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "USD", snap.Base)
	assert.Equal(t, 1, fetcher.calls)
}

func TestCacheServesFreshWithoutRefetch(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{snaps: []*currency.Snapshot{snapshotAt(now)}}

	cache := NewCache(fetcher, time.Hour)
	cache.nowFn = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		_, err := cache.Current(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, fetcher.calls)
}

func TestCacheRefreshesWhenStale(t *testing.T) {
	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	later := start.Add(2 * time.Hour)
	fetcher := &fakeFetcher{snaps: []*currency.Snapshot{snapshotAt(start), snapshotAt(later)}}

	now := start
	cache := NewCache(fetcher, time.Hour)
	cache.nowFn = func() time.Time { return now }

	_, err := cache.Current(context.Background())
	require.NoError(t, err)

	now = later
	snap, err := cache.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
	assert.Equal(t, later, snap.FetchedAt)
}

func TestCacheRefreshForcesFetchWhileFresh(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	updated := now.Add(5 * time.Minute)
	fetcher := &fakeFetcher{snaps: []*currency.Snapshot{snapshotAt(now), snapshotAt(updated)}}

	cache := NewCache(fetcher, time.Hour)
	cache.nowFn = func() time.Time { return now }

	_, err := cache.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, fetcher.calls)

	// The scheduled job refreshes even though the snapshot is well within TTL
	require.NoError(t, cache.Refresh(context.Background()))
	assert.Equal(t, 2, fetcher.calls)

	snap, err := cache.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, updated, snap.FetchedAt)
}

func TestCacheServesStaleOnFailure(t *testing.T) {
	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{
		snaps:  []*currency.Snapshot{snapshotAt(start)},
		errs:   []error{nil, errors.New("provider down")},
		fallEr: errors.New("provider down"),
	}

	now := start
	cache := NewCache(fetcher, time.Hour)
	cache.nowFn = func() time.Time { return now }

	_, err := cache.Current(context.Background())
	require.NoError(t, err)

	now = start.Add(3 * time.Hour)
	snap, err := cache.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, start, snap.FetchedAt, "stale snapshot should still be served")
}

func TestCacheFailsWithNothingCached(t *testing.T) {
	fetcher := &fakeFetcher{fallEr: errors.New("provider down")}

	cache := NewCache(fetcher, time.Hour)

	_, err := cache.Current(context.Background())
	require.Error(t, err)
}
