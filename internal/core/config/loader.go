package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if necessary
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.CORSOrigin == "" {
		cfg.Server.CORSOrigin = "*"
	}
	if cfg.Ethereum.PollInterval == 0 {
		cfg.Ethereum.PollInterval = 5 * time.Second
	}
	if cfg.Price.RefreshInterval == 0 {
		cfg.Price.RefreshInterval = 5 * time.Minute
	}
	if cfg.Price.FallbackUSD == 0 {
		cfg.Price.FallbackUSD = 2000
	}
	if cfg.Tracker.ThresholdEth == 0 {
		cfg.Tracker.ThresholdEth = 100
	}
	if cfg.Tracker.WindowSize == 0 {
		cfg.Tracker.WindowSize = 100
	}
	if cfg.Tracker.DedupSize == 0 {
		cfg.Tracker.DedupSize = 1000
	}
	if cfg.Tracker.StatsInterval == 0 {
		cfg.Tracker.StatsInterval = 30 * time.Second
	}

	return &cfg, nil
}

// Validate rejects configurations the tracker must not start with.
// Ingestion never begins in a half-configured state.
func (c *AppConfig) Validate() error {
	if c.Ethereum.RPCURL == "" {
		return fmt.Errorf("ethereum.rpc_url is required")
	}
	if c.Tracker.ThresholdEth <= 0 {
		return fmt.Errorf("tracker.threshold_eth must be positive, got %f", c.Tracker.ThresholdEth)
	}
	if c.Tracker.WindowSize <= 0 {
		return fmt.Errorf("tracker.window_size must be positive, got %d", c.Tracker.WindowSize)
	}
	if c.Tracker.DedupSize <= 0 {
		return fmt.Errorf("tracker.dedup_size must be positive, got %d", c.Tracker.DedupSize)
	}
	return nil
}
