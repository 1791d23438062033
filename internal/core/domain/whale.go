package domain

import "time"

// WhaleEvent is a recorded whale transaction. It is immutable once
// created: ValueUSD is fixed at detection time and is not re-priced
// when the ETH price moves later.
type WhaleEvent struct {
	Hash        string    `json:"hash"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Value       string    `json:"value"` // wei, decimal string
	ValueEth    float64   `json:"valueEth"`
	ValueUSD    float64   `json:"valueUsd"`
	BlockNumber uint64    `json:"blockNumber"`
	DetectedAt  time.Time `json:"timestamp"`
}
