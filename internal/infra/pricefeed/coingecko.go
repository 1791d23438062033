// Package pricefeed fetches the current ETH price in USD.
package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultEndpoint is the CoinGecko simple-price endpoint for ETH/USD.
const DefaultEndpoint = "https://api.coingecko.com/api/v3/simple/price?ids=ethereum&vs_currencies=usd"

// Client implements price.Source against the CoinGecko API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a price feed client. An empty endpoint selects the
// default CoinGecko URL.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CurrentPrice fetches the current ETH price in USD.
func (c *Client) CurrentPrice(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("price fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("price fetch: http %d", resp.StatusCode)
	}

	var payload struct {
		Ethereum struct {
			USD float64 `json:"usd"`
		} `json:"ethereum"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode price response: %w", err)
	}
	if payload.Ethereum.USD <= 0 {
		return 0, fmt.Errorf("price feed returned non-positive price %f", payload.Ethereum.USD)
	}

	return payload.Ethereum.USD, nil
}
