// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	LogFile  string `envconfig:"log_file"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`
	DBTxTimeout       time.Duration `envconfig:"db_tx_timeout" default:"30s"`

	JWTSecret     string        `envconfig:"jwt_secret" required:"true"`
	JWTIssuer     string        `envconfig:"jwt_issuer" default:"edumart"`
	TokenLifetime time.Duration `envconfig:"token_lifetime" default:"24h"`

	RedisAddr          string `envconfig:"redis_addr"`
	RedisPassword      string `envconfig:"redis_password"`
	RedisDB            int    `envconfig:"redis_db" default:"0"`
	RedisChannelPrefix string `envconfig:"redis_channel_prefix" default:"edumart"`

	StartingPoints        int    `envconfig:"starting_points" default:"100"`
	NotificationFeedLimit uint64 `envconfig:"notification_feed_limit" default:"20"`
}
