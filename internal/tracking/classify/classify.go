// Package classify decides whether a transaction qualifies as a whale.
package classify

import "math/big"

// Result is the outcome of classifying a single transaction.
type Result int

const (
	// SkipZero means the transaction carries no value and is ignored
	// entirely: it is never counted and never marked as seen.
	SkipZero Result = iota

	// BelowThreshold means the transaction has value but is too small.
	BelowThreshold

	// Whale means the converted value meets or exceeds the threshold.
	Whale

	// Invalid means the value could not be interpreted (e.g. negative).
	Invalid
)

var weiPerEth = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// WeiToEth converts a wei amount to ETH. The division happens in
// big.Float space so amounts beyond the 53-bit float range do not get
// silently truncated before scaling.
func WeiToEth(wei *big.Int) float64 {
	eth, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEth).Float64()
	return eth
}

// Classify evaluates a wei value against a threshold in ETH and returns
// the outcome together with the converted ETH value. It is pure: ledger
// writes happen in the ingestion loop only after acceptance succeeded.
// The threshold comparison is inclusive.
func Classify(value *big.Int, thresholdEth float64) (Result, float64) {
	if value == nil || value.Sign() == 0 {
		return SkipZero, 0
	}
	if value.Sign() < 0 {
		return Invalid, 0
	}

	eth := WeiToEth(value)
	if eth >= thresholdEth {
		return Whale, eth
	}
	return BelowThreshold, eth
}
