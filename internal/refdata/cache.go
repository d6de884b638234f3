package refdata

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Cache holds the current reference snapshot behind an atomic pointer.
// Readers always see one complete snapshot; a refresh builds the replacement
// off to the side and swaps it in wholesale. A failed refresh keeps the
// previous snapshot in place.
type Cache struct {
	provider Provider
	current  atomic.Pointer[Snapshot]
}

// NewCache loads the initial snapshot from the provider. A load failure at
// startup is a configuration error, not something to fail soft on.
func NewCache(ctx context.Context, provider Provider) (*Cache, error) {
	snap, err := provider.Load(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "refdata: initial load")
	}
	c := &Cache{provider: provider}
	c.current.Store(snap)
	return c, nil
}

// Snapshot returns the current immutable reference snapshot.
func (c *Cache) Snapshot() *Snapshot {
	return c.current.Load()
}

// Refresh loads a fresh snapshot and swaps it in. On error the old snapshot
// stays active.
func (c *Cache) Refresh(ctx context.Context) error {
	snap, err := c.provider.Load(ctx)
	if err != nil {
		return eris.Wrap(err, "refdata: refresh")
	}
	old := c.current.Swap(snap)
	zap.L().Info("refdata: snapshot refreshed",
		zap.String("old_version", old.Version),
		zap.String("new_version", snap.Version),
		zap.Time("updated_at", snap.UpdatedAt),
	)
	return nil
}

// Start refreshes on the given interval until ctx is cancelled. Each tick
// retries a failed load a few times with backoff before giving up until the
// next tick; assessments keep the last good snapshot throughout.
func (c *Cache) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := c.refreshWithRetry(ctx, 3, 2*time.Second); err != nil {
					zap.L().Warn("refdata: refresh failed, keeping previous snapshot",
						zap.Error(err),
					)
				}
			}
		}
	}()
}

// refreshWithRetry runs Refresh up to attempts times, doubling the delay
// between tries with ±25% jitter. Context cancellation stops retries.
func (c *Cache) refreshWithRetry(ctx context.Context, attempts int, backoff time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = c.Refresh(ctx)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || attempt >= attempts-1 {
			break
		}
		zap.L().Warn("refdata: refresh attempt failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
		delay := backoff << attempt
		jitter := time.Duration((rand.Float64()*0.5 - 0.25) * float64(delay))
		timer := time.NewTimer(delay + jitter)
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}
	}
	return lastErr
}

// Static wraps a fixed snapshot as a Provider, mostly for tests and for the
// builtin tables.
type Static struct {
	Snap *Snapshot
}

// Load returns the wrapped snapshot.
func (s Static) Load(context.Context) (*Snapshot, error) {
	if s.Snap == nil {
		return nil, eris.New("refdata: static provider has no snapshot")
	}
	return s.Snap, nil
}
