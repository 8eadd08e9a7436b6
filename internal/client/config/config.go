package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the dashboard CLI.
//
// ServerURL is the base URL of the REST API. HealthAddr is the host:port of
// the gRPC health endpoint the online watcher probes. DataDir holds the local
// SQLite store and the age identity that seals the saved session.
type Config struct {
	ServerURL           string
	HealthAddr          string
	DataDir             string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	SessionMaxAge       time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.HealthAddr = "127.0.0.1:50051"
	c.DataDir = ".wbdash"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.SessionMaxAge = 30 * 24 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
