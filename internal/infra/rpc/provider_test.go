package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestProvider_Call(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode body: %v", err)
			return
		}

		if v, ok := req["jsonrpc"].(string); !ok || v != "2.0" {
			t.Errorf("expected jsonrpc: 2.0, got %v", req["jsonrpc"])
		}
		if req["method"] != "eth_blockNumber" {
			t.Errorf("expected method eth_blockNumber, got %v", req["method"])
		}

		json.NewEncoder(w).Encode(map[string]any{
			"result": "0x123",
			"error":  nil,
			"id":     req["id"],
		})
	}))
	defer server.Close()

	p := NewHTTPProvider("eth-mock", server.URL, 5*time.Second)

	result, err := p.Call(context.Background(), "eth_blockNumber", []any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(string) != "0x123" {
		t.Errorf("expected 0x123, got %v", result)
	}
}

func TestProvider_Call_RPCError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result": nil,
			"error":  map[string]any{"code": -32601, "message": "method not found"},
			"id":     1,
		})
	}))
	defer server.Close()

	p := NewHTTPProvider("eth-mock", server.URL, 5*time.Second)

	if _, err := p.Call(context.Background(), "eth_bogus", []any{}); err == nil {
		t.Fatal("expected rpc error")
	}
}

func TestProvider_Call_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewHTTPProvider("eth-mock", server.URL, 5*time.Second)

	if _, err := p.Call(context.Background(), "eth_blockNumber", []any{}); err == nil {
		t.Fatal("expected rate limit error")
	}
}
