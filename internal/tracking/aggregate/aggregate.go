// Package aggregate owns whale event history and the running statistics.
package aggregate

import (
	"sync"
	"time"

	"github.com/vietddude/whalewatch/internal/core/domain"
	"github.com/vietddude/whalewatch/internal/tracking/metrics"
)

// Engine is the sole writer of whale history and statistics. The
// retained window and the stats struct are guarded by one mutex so an
// Accept is observed either fully or not at all.
type Engine struct {
	mu        sync.Mutex
	window    []domain.WhaleEvent // most-recent-first
	windowCap int
	stats     domain.Stats
	now       func() time.Time
}

// New creates an engine with the configured threshold and retained
// window capacity.
func New(thresholdEth float64, windowCap int) *Engine {
	return &Engine{
		windowCap: windowCap,
		stats:     domain.Stats{ThresholdEth: thresholdEth},
		now:       time.Now,
	}
}

// Accept records a qualifying transaction as a whale event and updates
// every statistic in a single critical section. The USD value is fixed
// from the price at detection time and never re-priced.
func (e *Engine) Accept(tx *domain.Transaction, valueEth, priceUSD float64) domain.WhaleEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	to := tx.To
	if to == "" {
		to = domain.ContractCreation
	}

	ev := domain.WhaleEvent{
		Hash:        tx.Hash,
		From:        tx.From,
		To:          to,
		Value:       tx.Value.String(),
		ValueEth:    valueEth,
		ValueUSD:    valueEth * priceUSD,
		BlockNumber: tx.BlockNumber,
		DetectedAt:  e.now(),
	}

	e.window = append([]domain.WhaleEvent{ev}, e.window...)
	if len(e.window) > e.windowCap {
		e.window = e.window[:e.windowCap]
	}

	e.stats.WhaleCount++
	e.stats.TotalVolumeEth += valueEth
	e.stats.TotalVolumeUSD += ev.ValueUSD
	e.stats.AverageEth = e.stats.TotalVolumeEth / float64(e.stats.WhaleCount)
	if valueEth > e.stats.LargestEth {
		e.stats.LargestEth = valueEth
	}
	e.stats.Last24hCount = e.countLast24h()

	metrics.WhalesDetected.Inc()
	metrics.LargestWhaleEth.Set(e.stats.LargestEth)

	return ev
}

// countLast24h scans the bounded window for events within the trailing
// 24 hours. Caller must hold the mutex.
func (e *Engine) countLast24h() int {
	cutoff := e.now().Add(-24 * time.Hour)
	count := 0
	for _, ev := range e.window {
		if !ev.DetectedAt.Before(cutoff) {
			count++
		}
	}
	return count
}

// BlockProcessed increments the processed-block counter.
func (e *Engine) BlockProcessed() {
	e.mu.Lock()
	e.stats.BlocksProcessed++
	e.mu.Unlock()
	metrics.BlocksProcessed.Inc()
}

// UpdatePrice replaces the current ETH price. Already recorded events
// keep the USD value they were detected with.
func (e *Engine) UpdatePrice(priceUSD float64) {
	e.mu.Lock()
	e.stats.EthPriceUSD = priceUSD
	e.mu.Unlock()
}

// RecentEvents returns up to limit events, most recent first. The
// returned slice is a copy.
func (e *Engine) RecentEvents(limit int) []domain.WhaleEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	if limit > len(e.window) {
		limit = len(e.window)
	}
	out := make([]domain.WhaleEvent, limit)
	copy(out, e.window[:limit])
	return out
}

// Snapshot returns a copy of the current statistics. Last24hCount is
// recomputed at read time so it decays without new accepts.
func (e *Engine) Snapshot() domain.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.Last24hCount = e.countLast24h()
	return e.stats
}
