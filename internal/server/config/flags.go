package config

import (
	"flag"
	"io"
	"time"

	"github.com/wbdash/wbdash/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   HTTP listen address
//	-g string   gRPC health listen address
//	-d string   PostgreSQL DSN
//	-s string   token signing secret
//	-t int      access token validity (minutes)
//	-x bool     accept the X-User-ID header as authentication
//	-q string   AMQP URL
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-x", "-q"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrHTTP, "a", cfg.EndpointAddrHTTP, "HTTP listen address")
	fs.StringVar(&cfg.EndpointAddrGRPC, "g", cfg.EndpointAddrGRPC, "gRPC health listen address")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "token signing secret")
	accessTokenValidity := fs.Int("t", int(cfg.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.BoolVar(&cfg.AllowUserIDHeader, "x", cfg.AllowUserIDHeader, "accept X-User-ID as authentication")
	fs.StringVar(&cfg.AMQPURL, "q", cfg.AMQPURL, "AMQP URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
}
