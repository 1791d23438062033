// Package price holds the latest ETH reference price.
package price

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vietddude/whalewatch/internal/tracking/metrics"
)

// Source fetches the current ETH price in USD from an external feed.
type Source interface {
	CurrentPrice(ctx context.Context) (float64, error)
}

// Cache holds the most recent price, refreshed on its own timer. A
// failed refresh keeps the previous value: a stale price beats a
// missing one. Before the first successful fetch the cache holds the
// configured fallback so early detections still get a USD estimate.
type Cache struct {
	source   Source
	interval time.Duration
	onUpdate func(float64)
	log      *slog.Logger

	mu      sync.RWMutex
	current float64
}

// NewCache creates a cache seeded with the fallback price. onUpdate is
// invoked after every successful refresh and may be nil.
func NewCache(source Source, fallbackUSD float64, interval time.Duration, onUpdate func(float64)) *Cache {
	return &Cache{
		source:   source,
		interval: interval,
		onUpdate: onUpdate,
		current:  fallbackUSD,
		log:      slog.Default(),
	}
}

// Current returns the cached price.
func (c *Cache) Current() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Refresh fetches the price once. There is no retry within a single
// attempt; the next scheduled tick is the retry.
func (c *Cache) Refresh(ctx context.Context) error {
	p, err := c.source.CurrentPrice(ctx)
	if err != nil {
		metrics.PriceRefreshFailures.Inc()
		c.log.Warn("Failed to refresh ETH price, keeping previous value",
			"error", err, "price", c.Current())
		return err
	}

	c.mu.Lock()
	c.current = p
	c.mu.Unlock()

	c.log.Info("ETH price updated", "price", p)
	if c.onUpdate != nil {
		c.onUpdate(p)
	}
	return nil
}

// Run refreshes immediately, then on every interval tick until ctx is
// cancelled.
func (c *Cache) Run(ctx context.Context) {
	_ = c.Refresh(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Refresh(ctx)
		}
	}
}
