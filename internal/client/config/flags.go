package config

import (
	"flag"
	"io"
	"time"

	"github.com/wbdash/wbdash/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   base URL of the REST API
//	-g string   host:port of the gRPC health endpoint
//	-d string   local data directory
//	-i int      online check interval (seconds)
//	-t int      request timeout (seconds)
//
// Unknown flags are filtered out first so other components can share os.Args.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-i", "-t"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the API server")
	fs.StringVar(&cfg.HealthAddr, "g", cfg.HealthAddr, "address of the gRPC health endpoint")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
