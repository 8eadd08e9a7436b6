package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	loadDotEnv = func() {}
}

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, 24*time.Hour, c.AccessTokenValidityDuration)
	assert.True(t, c.AllowUserIDHeader)
	assert.Equal(t, "wb.ingest", c.AMQPQueue)
}

func TestParseEnv(t *testing.T) {
	t.Run("postgres variables build the DSN", func(t *testing.T) {
		cfg := defaults()
		parseEnv(cfg, env(map[string]string{
			"POSTGRES_DB":       "market",
			"POSTGRES_USER":     "seller",
			"POSTGRES_PASSWORD": "p@ss",
			"DB_HOST":           "db",
			"DB_PORT":           "6432",
			"SECRET_KEY":        "s3",
			"AMQP_URL":          "amqp://mq/",
		}))

		assert.Equal(t, "postgres://seller:p%40ss@db:6432/market?sslmode=disable", cfg.DatabaseDSN)
		assert.Equal(t, "s3", cfg.SecretKey)
		assert.Equal(t, "amqp://mq/", cfg.AMQPURL)
	})

	t.Run("DATABASE_DSN wins", func(t *testing.T) {
		cfg := defaults()
		parseEnv(cfg, env(map[string]string{"POSTGRES_DB": "market", "DATABASE_DSN": "postgres://x/y"}))
		assert.Equal(t, "postgres://x/y", cfg.DatabaseDSN)
	})

	t.Run("empty environment keeps defaults", func(t *testing.T) {
		cfg := defaults()
		parseEnv(cfg, env(nil))
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})
}

func TestParseFlags(t *testing.T) {
	cfg := defaults()
	parseFlags(cfg, []string{"-a", ":9000", "-g", ":9001", "-d", "db", "-s", "secret", "-t", "5", "-x=false", "-q", "amqp://q/"})

	want := defaults()
	want.EndpointAddrHTTP = ":9000"
	want.EndpointAddrGRPC = ":9001"
	want.DatabaseDSN = "db"
	want.SecretKey = "secret"
	want.AccessTokenValidityDuration = 5 * time.Minute
	want.AllowUserIDHeader = false
	want.AMQPURL = "amqp://q/"
	assert.Empty(t, cmp.Diff(want, cfg))

	require.Panics(t, func() { parseFlags(defaults(), []string{"-t", "soon"}) })
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint_addr_http": ":7000",
		"access_token_validity_duration": "2h",
		"allow_user_id_header": false,
		"amqp_queue": "orders"
	}`), 0o600))

	cfg := defaults()
	parseJSON(cfg, []string{"-c", path})

	assert.Equal(t, ":7000", cfg.EndpointAddrHTTP)
	assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenValidityDuration)
	assert.False(t, cfg.AllowUserIDHeader)
	assert.Equal(t, "orders", cfg.AMQPQueue)
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"secret_key": "from-json"}`), 0o600))

	cfg := load([]string{"-c", path}, env(map[string]string{"SECRET_KEY": "from-env"}))
	assert.Equal(t, "from-json", cfg.SecretKey)

	cfg = load([]string{"-c", path, "-s", "from-flag"}, env(map[string]string{"SECRET_KEY": "from-env"}))
	assert.Equal(t, "from-flag", cfg.SecretKey)
}
