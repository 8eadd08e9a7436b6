package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	assert.Equal(t, "127.0.0.1:50051", c.HealthAddr)
	assert.Equal(t, ".wbdash", c.DataDir)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 720*time.Hour, c.SessionMaxAge)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    func(*Config)
		expectPanic bool
	}{
		{
			name:     "overrides",
			args:     []string{"-a", "http://api:9000", "-g", "api:50051", "-i", "10", "-t", "5", "-d", "/tmp/x"},
			expected: func(c *Config) {
				c.ServerURL = "http://api:9000"
				c.HealthAddr = "api:50051"
				c.DataDir = "/tmp/x"
				c.OnlineCheckInterval = 10 * time.Second
				c.RequestTimeout = 5 * time.Second
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-x", "1", "-a=http://h:1"},
			expected: func(c *Config) { c.ServerURL = "http://h:1" },
		},
		{name: "bad interval", args: []string{"-i", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			want := defaults()
			tt.expected(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestParseJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"server_url":            "http://json:1",
		"online_check_interval": "10s",
		"session_max_age":       "48h",
	})

	t.Run("loads from file", func(t *testing.T) {
		cfg := defaults()
		parseJSON(cfg, []string{"-config", path})

		assert.Equal(t, "http://json:1", cfg.ServerURL)
		assert.Equal(t, "127.0.0.1:50051", cfg.HealthAddr)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, 48*time.Hour, cfg.SessionMaxAge)
	})

	t.Run("no file leaves config alone", func(t *testing.T) {
		cfg := defaults()
		parseJSON(cfg, nil)
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("missing file panics", func(t *testing.T) {
		cfg := defaults()
		require.Panics(t, func() { parseJSON(cfg, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}) })
	})
}

func TestLoad_FlagsBeatJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"server_url": "http://json:1"})

	cfg := load([]string{"-c", path, "-a", "http://flag:2"})

	assert.Equal(t, "http://flag:2", cfg.ServerURL)
}
