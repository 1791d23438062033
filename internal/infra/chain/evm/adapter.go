// Package evm adapts an Ethereum JSON-RPC endpoint to the block source
// interface the ingestion loop consumes.
package evm

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/vietddude/whalewatch/internal/core/domain"
)

// Client is the JSON-RPC surface the adapter needs.
type Client interface {
	Call(ctx context.Context, method string, params []any) (any, error)
}

type Adapter struct {
	client       Client
	pollInterval time.Duration
	log          *slog.Logger
	lastHead     uint64
}

// NewAdapter creates an adapter that polls for new heads every pollInterval.
func NewAdapter(client Client, pollInterval time.Duration) *Adapter {
	return &Adapter{
		client:       client,
		pollInterval: pollInterval,
		log:          slog.Default(),
	}
}

// LatestBlockNumber returns the chain head number.
func (a *Adapter) LatestBlockNumber(ctx context.Context) (uint64, error) {
	result, err := a.client.Call(ctx, "eth_blockNumber", []any{})
	if err != nil {
		return 0, fmt.Errorf("eth_blockNumber failed: %w", err)
	}

	blockHex, ok := result.(string)
	if !ok {
		return 0, fmt.Errorf("invalid block number response")
	}
	return parseHexUint(blockHex)
}

// BlockTransactions fetches a block with full transaction objects.
func (a *Adapter) BlockTransactions(ctx context.Context, number uint64) ([]*domain.Transaction, error) {
	blockHex := fmt.Sprintf("0x%x", number)
	result, err := a.client.Call(ctx, "eth_getBlockByNumber", []any{blockHex, true})
	if err != nil {
		return nil, fmt.Errorf("eth_getBlockByNumber failed: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("block %d not found", number)
	}

	rawBlock, ok := result.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid block format")
	}

	rawTxs, _ := rawBlock["transactions"].([]any)
	txs := make([]*domain.Transaction, 0, len(rawTxs))
	for _, raw := range rawTxs {
		rawTx, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		txs = append(txs, a.parseTransaction(rawTx, number))
	}

	return txs, nil
}

func (a *Adapter) parseTransaction(raw map[string]any, blockNumber uint64) *domain.Transaction {
	return &domain.Transaction{
		Hash:        getString(raw["hash"]),
		From:        strings.ToLower(getString(raw["from"])),
		To:          strings.ToLower(getString(raw["to"])),
		Value:       parseHexBig(getString(raw["value"])),
		BlockNumber: blockNumber,
	}
}

// Watch polls the chain head on a ticker and calls notify when it
// advances. Only the most recent head is reported: intermediate blocks
// between two polls are not backfilled.
func (a *Adapter) Watch(ctx context.Context, notify func(uint64)) {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			head, err := a.LatestBlockNumber(ctx)
			if err != nil {
				a.log.Warn("Head poll failed", "error", err)
				continue
			}
			if head > a.lastHead {
				a.lastHead = head
				notify(head)
			}
		}
	}
}

func getString(v any) string {
	s, _ := v.(string)
	return s
}

func parseHexUint(s string) (uint64, error) {
	n, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	if !ok {
		return 0, fmt.Errorf("invalid hex number: %q", s)
	}
	return n.Uint64(), nil
}

// parseHexBig parses a hex quantity into a big.Int, returning zero for
// malformed input so one bad field never aborts block processing.
func parseHexBig(s string) *big.Int {
	if s == "" {
		return new(big.Int)
	}
	n, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	if !ok {
		return new(big.Int)
	}
	return n
}
