package config

import (
	"encoding/json"
	"os"

	"github.com/wbdash/wbdash/internal/flagx"
	"github.com/wbdash/wbdash/internal/timex"
)

// JSONConfig is the file form of Config. Durations go through timex.Duration
// so they may be written as "3s" or as integer nanoseconds. Empty fields
// leave the current value untouched.
type JSONConfig struct {
	ServerURL           string         `json:"server_url"`
	HealthAddr          string         `json:"health_addr"`
	DataDir             string         `json:"data_dir"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	SessionMaxAge       timex.Duration `json:"session_max_age"`
}

// parseJSON overlays cfg with the file named by -c or -config. It panics on
// read or decode errors.
func parseJSON(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.HealthAddr != "" {
		cfg.HealthAddr = jc.HealthAddr
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionMaxAge.Duration > 0 {
		cfg.SessionMaxAge = jc.SessionMaxAge.Duration
	}
}
