package pricefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_CurrentPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ethereum":{"usd":3421.57}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)

	p, err := c.CurrentPrice(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != 3421.57 {
		t.Errorf("expected price 3421.57, got %f", p)
	}
}

func TestClient_CurrentPrice_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)

	if _, err := c.CurrentPrice(context.Background()); err == nil {
		t.Fatal("expected error for http 502")
	}
}

func TestClient_CurrentPrice_ZeroPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ethereum":{"usd":0}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)

	if _, err := c.CurrentPrice(context.Background()); err == nil {
		t.Fatal("expected error for zero price")
	}
}
