package config

import (
	"net"
	"net/url"

	"github.com/joho/godotenv"
)

// loadDotEnv is a seam for godotenv.Load; a missing .env file is not an error.
var loadDotEnv = func() { _ = godotenv.Load() }

// parseEnv overlays cfg with environment variables. POSTGRES_DB,
// POSTGRES_USER, POSTGRES_PASSWORD, DB_HOST and DB_PORT assemble the DSN
// when POSTGRES_DB is set; DATABASE_DSN wins over them.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	loadDotEnv()

	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	if db := get("POSTGRES_DB", ""); db != "" {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(get("POSTGRES_USER", "postgres"), get("POSTGRES_PASSWORD", "")),
			Host:     net.JoinHostPort(get("DB_HOST", "postgres"), get("DB_PORT", "5432")),
			Path:     "/" + db,
			RawQuery: "sslmode=disable",
		}
		cfg.DatabaseDSN = u.String()
	}
	cfg.DatabaseDSN = get("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.SecretKey = get("SECRET_KEY", cfg.SecretKey)
	cfg.AMQPURL = get("AMQP_URL", cfg.AMQPURL)
}
