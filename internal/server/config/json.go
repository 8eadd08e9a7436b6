package config

import (
	"encoding/json"
	"os"

	"github.com/wbdash/wbdash/internal/flagx"
	"github.com/wbdash/wbdash/internal/timex"
)

// JSONConfig is the file form of Config. Empty fields keep the current value.
type JSONConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	AllowUserIDHeader           *bool          `json:"allow_user_id_header"`
	AMQPURL                     string         `json:"amqp_url"`
	AMQPExchange                string         `json:"amqp_exchange"`
	AMQPQueue                   string         `json:"amqp_queue"`
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

	setString(&cfg.EndpointAddrHTTP, jc.EndpointAddrHTTP)
	setString(&cfg.EndpointAddrGRPC, jc.EndpointAddrGRPC)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.SecretKey, jc.SecretKey)
	setString(&cfg.AMQPURL, jc.AMQPURL)
	setString(&cfg.AMQPExchange, jc.AMQPExchange)
	setString(&cfg.AMQPQueue, jc.AMQPQueue)
	if jc.AccessTokenValidityDuration.Duration > 0 {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	if jc.AllowUserIDHeader != nil {
		cfg.AllowUserIDHeader = *jc.AllowUserIDHeader
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
