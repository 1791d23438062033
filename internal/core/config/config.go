package config

import "time"

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Ethereum EthereumConfig `yaml:"ethereum"`
	Price    PriceConfig    `yaml:"price"`
	Tracker  TrackerConfig  `yaml:"tracker"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port       int    `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// EthereumConfig holds block source settings.
type EthereumConfig struct {
	RPCURL       string        `yaml:"rpc_url"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// PriceConfig holds the ETH price feed settings.
type PriceConfig struct {
	Endpoint        string        `yaml:"endpoint"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	FallbackUSD     float64       `yaml:"fallback_usd"`
}

// TrackerConfig holds whale detection settings.
type TrackerConfig struct {
	ThresholdEth  float64       `yaml:"threshold_eth"`
	WindowSize    int           `yaml:"window_size"`
	DedupSize     int           `yaml:"dedup_size"`
	StatsInterval time.Duration `yaml:"stats_interval"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}
