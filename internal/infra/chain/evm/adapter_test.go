package evm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vietddude/whalewatch/internal/infra/rpc"
)

func newMockRPC(t *testing.T, handler func(method string, params []any) any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			Params []any  `json:"params"`
			ID     any    `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"result": handler(req.Method, req.Params),
			"error":  nil,
			"id":     req.ID,
		})
	}))
}

func TestAdapter_LatestBlockNumber(t *testing.T) {
	server := newMockRPC(t, func(method string, params []any) any {
		if method != "eth_blockNumber" {
			t.Errorf("unexpected method %s", method)
		}
		return "0x15b3"
	})
	defer server.Close()

	a := NewAdapter(rpc.NewHTTPProvider("mock", server.URL, 5*time.Second), time.Second)

	n, err := a.LatestBlockNumber(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0x15b3 {
		t.Errorf("expected block 0x15b3, got %d", n)
	}
}

func TestAdapter_BlockTransactions(t *testing.T) {
	server := newMockRPC(t, func(method string, params []any) any {
		if method != "eth_getBlockByNumber" {
			t.Errorf("unexpected method %s", method)
		}
		if params[0] != "0x64" || params[1] != true {
			t.Errorf("unexpected params %v", params)
		}
		return map[string]any{
			"number": "0x64",
			"hash":   "0xblockhash",
			"transactions": []any{
				map[string]any{
					"hash":  "0xTX1",
					"from":  "0xABCD",
					"to":    "0xEF01",
					"value": "0x8ac7230489e80000", // 10 ETH
				},
				map[string]any{
					"hash":  "0xtx2",
					"from":  "0xfrom",
					"to":    nil, // contract creation
					"value": "0x0",
				},
			},
		}
	})
	defer server.Close()

	a := NewAdapter(rpc.NewHTTPProvider("mock", server.URL, 5*time.Second), time.Second)

	txs, err := a.BlockTransactions(context.Background(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}

	tx := txs[0]
	if tx.Hash != "0xTX1" {
		t.Errorf("expected hash preserved, got %s", tx.Hash)
	}
	if tx.From != "0xabcd" || tx.To != "0xef01" {
		t.Errorf("expected lowercased addresses, got %s / %s", tx.From, tx.To)
	}
	if tx.Value.String() != "10000000000000000000" {
		t.Errorf("expected 10 ETH in wei, got %s", tx.Value.String())
	}
	if tx.BlockNumber != 100 {
		t.Errorf("expected block number 100, got %d", tx.BlockNumber)
	}

	if txs[1].To != "" {
		t.Errorf("expected empty to-address for contract creation, got %q", txs[1].To)
	}
	if txs[1].Value.Sign() != 0 {
		t.Errorf("expected zero value, got %s", txs[1].Value.String())
	}
}

func TestAdapter_Watch(t *testing.T) {
	var head atomic.Value
	head.Store("0x1")
	server := newMockRPC(t, func(method string, params []any) any {
		return head.Load()
	})
	defer server.Close()

	a := NewAdapter(rpc.NewHTTPProvider("mock", server.URL, 5*time.Second), 10*time.Millisecond)

	notified := make(chan uint64, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.Watch(ctx, func(n uint64) { notified <- n })

	select {
	case n := <-notified:
		if n != 1 {
			t.Errorf("expected head 1, got %d", n)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for head notification")
	}

	// Head advances: exactly the new head is reported.
	head.Store("0x3")
	select {
	case n := <-notified:
		if n != 3 {
			t.Errorf("expected head 3, got %d", n)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for second notification")
	}

	// Unchanged head produces no further notifications.
	select {
	case n := <-notified:
		t.Errorf("unexpected notification %d for unchanged head", n)
	case <-time.After(50 * time.Millisecond):
	}
}
