// Package control wires the tracker's components and manages their
// lifecycle.
package control

import (
	"context"
	"log/slog"
	"time"

	"github.com/vietddude/whalewatch/internal/api"
	"github.com/vietddude/whalewatch/internal/core/config"
	"github.com/vietddude/whalewatch/internal/infra/chain/evm"
	"github.com/vietddude/whalewatch/internal/infra/pricefeed"
	"github.com/vietddude/whalewatch/internal/infra/rpc"
	"github.com/vietddude/whalewatch/internal/infra/ws"
	"github.com/vietddude/whalewatch/internal/tracking/aggregate"
	"github.com/vietddude/whalewatch/internal/tracking/dedup"
	"github.com/vietddude/whalewatch/internal/tracking/ingest"
	"github.com/vietddude/whalewatch/internal/tracking/price"
)

// Tracker owns every component of the whale tracking pipeline. It is
// constructed explicitly and passed by reference; there is no ambient
// global state.
type Tracker struct {
	cfg     config.AppConfig
	engine  *aggregate.Engine
	ledger  *dedup.Ledger
	prices  *price.Cache
	hub     *ws.Hub
	loop    *ingest.Loop
	adapter *evm.Adapter
	server  *api.Server
	log     *slog.Logger
}

// NewTracker creates a tracker with all dependencies initialized.
func NewTracker(cfg config.AppConfig) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hub := ws.NewHub(64)
	engine := aggregate.New(cfg.Tracker.ThresholdEth, cfg.Tracker.WindowSize)
	ledger := dedup.NewLedger(cfg.Tracker.DedupSize)

	provider := rpc.NewHTTPProvider("ethereum", cfg.Ethereum.RPCURL, 10*time.Second)
	adapter := evm.NewAdapter(provider, cfg.Ethereum.PollInterval)

	feed := pricefeed.NewClient(cfg.Price.Endpoint, 10*time.Second)
	prices := price.NewCache(feed, cfg.Price.FallbackUSD, cfg.Price.RefreshInterval,
		func(p float64) {
			engine.UpdatePrice(p)
			hub.PublishPrice(p)
		})
	engine.UpdatePrice(cfg.Price.FallbackUSD)

	loop := ingest.NewLoop(ingest.Config{
		Source:       adapter,
		Ledger:       ledger,
		Engine:       engine,
		Prices:       prices,
		Publisher:    hub,
		ThresholdEth: cfg.Tracker.ThresholdEth,
	})

	server := api.NewServer(engine, hub, cfg.Server.Port, cfg.Server.CORSOrigin)

	return &Tracker{
		cfg:     cfg,
		engine:  engine,
		ledger:  ledger,
		prices:  prices,
		hub:     hub,
		loop:    loop,
		adapter: adapter,
		server:  server,
		log:     slog.Default(),
	}, nil
}

// Start starts the tracker and all its background tasks.
func (t *Tracker) Start(ctx context.Context) error {
	t.log.Info("Starting whale tracker",
		"threshold_eth", t.cfg.Tracker.ThresholdEth,
		"port", t.cfg.Server.Port)

	go func() {
		if err := t.server.Start(); err != nil {
			t.log.Error("API server failed", "error", err)
		}
	}()

	go func() {
		if err := t.loop.Run(ctx); err != nil {
			t.log.Error("Ingestion loop failed", "error", err)
		}
	}()

	go t.adapter.Watch(ctx, t.loop.Notify)
	go t.prices.Run(ctx)
	go t.runStatsBroadcaster(ctx)

	return nil
}

// Stop stops the tracker.
func (t *Tracker) Stop(ctx context.Context) error {
	t.log.Info("Stopping whale tracker...")
	t.loop.Stop()
	return t.server.Stop(ctx)
}

// runStatsBroadcaster pushes a statistics snapshot to all subscribers
// on a fixed interval.
func (t *Tracker) runStatsBroadcaster(ctx context.Context) {
	ticker := time.NewTicker(t.cfg.Tracker.StatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := t.engine.Snapshot()
			stats.ConnectedClients = t.hub.ClientCount()
			t.hub.PublishStats(stats)
		}
	}
}
