package domain

// Stats holds the running aggregate statistics for the tracker.
// Counters are lifetime totals and are deliberately decoupled from the
// bounded recent-events window: WhaleCount keeps growing after old
// events age out of the window.
type Stats struct {
	BlocksProcessed  uint64  `json:"blocksProcessed"`
	WhaleCount       uint64  `json:"totalWhales"`
	TotalVolumeEth   float64 `json:"totalVolumeEth"`
	TotalVolumeUSD   float64 `json:"totalVolumeUsd"`
	AverageEth       float64 `json:"averageTransactionEth"`
	LargestEth       float64 `json:"largestTransactionEth"`
	Last24hCount     int     `json:"last24hCount"`
	EthPriceUSD      float64 `json:"ethPriceUsd"`
	ThresholdEth     float64 `json:"whaleThreshold"`
	ConnectedClients int     `json:"connectedClients"`
}
