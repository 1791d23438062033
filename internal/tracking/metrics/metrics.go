package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BlocksProcessed tracks total blocks run through the ingestion loop
	BlocksProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "whalewatch_blocks_processed_total",
			Help: "Total number of blocks processed",
		},
	)

	// BlockFetchFailures tracks blocks skipped due to fetch errors
	BlockFetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "whalewatch_block_fetch_failures_total",
			Help: "Total number of block fetches that failed",
		},
	)

	// WhalesDetected tracks accepted whale transactions
	WhalesDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "whalewatch_whales_detected_total",
			Help: "Total number of whale transactions detected",
		},
	)

	// LargestWhaleEth tracks the largest whale value seen so far
	LargestWhaleEth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "whalewatch_largest_whale_eth",
			Help: "Largest whale transaction value in ETH",
		},
	)

	// PriceRefreshFailures tracks failed ETH price fetches
	PriceRefreshFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "whalewatch_price_refresh_failures_total",
			Help: "Total number of failed ETH price refreshes",
		},
	)

	// ConnectedClients tracks currently subscribed websocket clients
	ConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "whalewatch_connected_clients",
			Help: "Number of currently connected websocket clients",
		},
	)

	// RPCLatency tracks JSON-RPC call latency
	RPCLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "whalewatch_rpc_latency_seconds",
			Help:    "JSON-RPC call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
