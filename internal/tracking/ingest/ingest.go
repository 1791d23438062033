// Package ingest drives the block processing pipeline.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/vietddude/whalewatch/internal/core/domain"
	"github.com/vietddude/whalewatch/internal/tracking/aggregate"
	"github.com/vietddude/whalewatch/internal/tracking/classify"
	"github.com/vietddude/whalewatch/internal/tracking/dedup"
	"github.com/vietddude/whalewatch/internal/tracking/metrics"
	"github.com/vietddude/whalewatch/internal/tracking/price"
)

// BlockSource supplies block contents. Fetch failures are transient:
// the loop logs, skips the block and waits for the next notification.
type BlockSource interface {
	// LatestBlockNumber returns the most recent block number on chain.
	LatestBlockNumber(ctx context.Context) (uint64, error)

	// BlockTransactions fetches all transactions in a block.
	BlockTransactions(ctx context.Context, number uint64) ([]*domain.Transaction, error)
}

// Publisher receives every accepted whale event.
type Publisher interface {
	PublishWhale(ev domain.WhaleEvent)
}

// Config holds the loop's collaborators.
type Config struct {
	Source       BlockSource
	Ledger       *dedup.Ledger
	Engine       *aggregate.Engine
	Prices       *price.Cache
	Publisher    Publisher
	ThresholdEth float64
	QueueSize    int
}

// Loop consumes new-block notifications one at a time and feeds
// qualifying transactions to the aggregation engine. Notifications are
// queued on a channel so ordering stays explicit: blocks are processed
// strictly in arrival order, never concurrently.
type Loop struct {
	cfg     Config
	blocks  chan uint64
	running atomic.Bool
	stop    chan struct{}
	log     *slog.Logger
}

// NewLoop creates a new ingestion loop.
func NewLoop(cfg Config) *Loop {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	return &Loop{
		cfg:    cfg,
		blocks: make(chan uint64, cfg.QueueSize),
		stop:   make(chan struct{}),
		log:    slog.Default(),
	}
}

// Notify enqueues a block number for processing. If the queue is full
// the notification is dropped: a missed block is an accepted loss for a
// monitoring system, not a correctness violation.
func (l *Loop) Notify(blockNumber uint64) {
	select {
	case l.blocks <- blockNumber:
	default:
		l.log.Warn("Block queue full, dropping notification", "block", blockNumber)
	}
}

// Run performs the startup catch-up against the latest known block,
// then drains notifications until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return fmt.Errorf("ingestion loop already running")
	}
	defer l.running.Store(false)

	if latest, err := l.cfg.Source.LatestBlockNumber(ctx); err != nil {
		l.log.Warn("Catch-up fetch of latest block failed", "error", err)
	} else {
		l.log.Info("Connected to chain", "latest_block", latest)
		l.ProcessBlock(ctx, latest)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.stop:
			return nil
		case n := <-l.blocks:
			l.ProcessBlock(ctx, n)
		}
	}
}

// Stop stops the loop.
func (l *Loop) Stop() {
	if l.running.Load() {
		close(l.stop)
	}
}

// ProcessBlock runs a single block through the classify/dedup/accept
// pipeline. Errors never abort the loop.
func (l *Loop) ProcessBlock(ctx context.Context, number uint64) {
	txs, err := l.cfg.Source.BlockTransactions(ctx, number)
	if err != nil {
		metrics.BlockFetchFailures.Inc()
		l.log.Warn("Failed to fetch block, skipping", "block", number, "error", err)
		return
	}
	if len(txs) == 0 {
		l.log.Debug("Block has no transactions", "block", number)
		return
	}

	l.cfg.Engine.BlockProcessed()
	l.log.Debug("Processing block", "block", number, "txs", len(txs))

	whales := 0
	for _, tx := range txs {
		if l.cfg.Ledger.Has(tx.Hash) {
			continue
		}

		result, valueEth := classify.Classify(tx.Value, l.cfg.ThresholdEth)
		switch result {
		case classify.Invalid:
			l.log.Warn("Skipping transaction with invalid value", "hash", tx.Hash, "block", number)
		case classify.Whale:
			ev := l.cfg.Engine.Accept(tx, valueEth, l.cfg.Prices.Current())
			// Ledger write happens only after acceptance so a failure
			// upstream cannot mark a transaction as processed.
			l.cfg.Ledger.Add(tx.Hash)
			l.cfg.Publisher.PublishWhale(ev)
			whales++
			l.log.Info("Whale detected",
				"hash", tx.Hash,
				"from", tx.From,
				"to", ev.To,
				"value_eth", valueEth,
				"value_usd", ev.ValueUSD,
				"block", number)
		}
	}

	if whales > 0 {
		l.log.Info("Whales found in block", "block", number, "count", whales)
	}
}
