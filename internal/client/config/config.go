package config

import "time"

// Config holds runtime settings for the CloudChest CLI.
//
// Fields:
//   - BaseURL: root URL of the CloudChest REST API.
//   - RequestTimeout: per-request deadline for API calls.
//   - DatabaseDSN: sqlite DSN for the local cache and session store.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	BaseURL             string
	DatabaseDSN         string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.DatabaseDSN = "cloudchest.db"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
