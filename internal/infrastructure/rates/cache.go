package rates

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"centavo/internal/domain/currency"
)

// Fetcher retrieves a fresh snapshot from the provider
type Fetcher interface {
	Fetch(ctx context.Context) (*currency.Snapshot, error)
}

// Cache keeps the latest rate snapshot and refreshes it when it goes stale.
// A failed refresh keeps serving the previous snapshot; conversions degrade
// to stale rates rather than failing outright. Implements
// currency.SnapshotSource.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration

	mu   sync.RWMutex
	snap *currency.Snapshot

	// refreshMu keeps concurrent refreshes from stampeding the provider
	refreshMu sync.Mutex

	nowFn func() time.Time
}

// NewCache creates a snapshot cache with the given staleness TTL
func NewCache(fetcher Fetcher, ttl time.Duration) *Cache {
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		nowFn:   time.Now,
	}
}

// Current returns the cached snapshot, refreshing first when it is missing
// or older than the TTL. Only ever returns an error when there is no
// snapshot at all.
func (c *Cache) Current(ctx context.Context) (*currency.Snapshot, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()

	if snap != nil && c.nowFn().Sub(snap.FetchedAt) < c.ttl {
		return snap, nil
	}

	if err := c.refreshIfStale(ctx); err != nil {
		if snap != nil {
			// Serve stale rather than fail
			log.Printf("Rates: refresh failed, serving snapshot from %s: %v", snap.FetchedAt.Format(time.RFC3339), err)
			return snap, nil
		}
		return nil, fmt.Errorf("no rate snapshot available: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap, nil
}

// Refresh fetches a new snapshot and swaps it in, regardless of the current
// snapshot's age. The scheduled refresh job uses this so requests after TTL
// expiry never pay provider latency inline. Last writer wins; readers
// holding the old snapshot keep a consistent view since snapshots are
// immutable.
func (c *Cache) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	fresh, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.snap = fresh
	c.mu.Unlock()
	return nil
}

// refreshIfStale refreshes only when the snapshot is missing or expired.
func (c *Cache) refreshIfStale(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another caller may have refreshed while we waited for the lock
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()
	if snap != nil && c.nowFn().Sub(snap.FetchedAt) < c.ttl {
		return nil
	}

	fresh, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.snap = fresh
	c.mu.Unlock()
	return nil
}
