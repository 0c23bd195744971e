// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-rag-auth service. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file, an optional .env file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds security parameters: signing key, token lifetimes and the
	// brute-force protection thresholds.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the credential store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds configuration for the generation backend client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// RateLimit holds the optional Redis-backed per-IP limiter settings.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// Broker holds the optional AMQP settings for auth audit events.
	Broker Broker `envPrefix:"BROKER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// DotEnvPath is the optional path to a .env file. When empty, ".env" in
	// the working directory is used if it exists.
	// Populated via the DOTENV environment variable or the -env-file flag.
	DotEnvPath string `env:"DOTENV"`
}

// App holds application-level configuration values that control security,
// token lifecycle, lockout and versioning.
type App struct {
	// TokenSignKey is the HS256 secret used to sign and verify JWT tokens.
	// When no key is configured a random one is generated at startup, which
	// invalidates every token on restart.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// EphemeralSignKey is set when TokenSignKey was generated at startup.
	EphemeralSignKey bool

	// TokenIssuer is the "iss" claim embedded in, and required from, every token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// AccessTokenDuration is the access token lifetime (default 30m).
	// Env: APP_ACCESS_TOKEN_DURATION
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION"`

	// RefreshTokenDuration is the refresh token lifetime (default 168h).
	// Env: APP_REFRESH_TOKEN_DURATION
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION"`

	// MaxLoginAttempts is the number of failed signins inside LockoutWindow
	// that locks an email (default 5).
	// Env: APP_MAX_LOGIN_ATTEMPTS
	MaxLoginAttempts int `env:"MAX_LOGIN_ATTEMPTS"`

	// LockoutWindow is the sliding window failures are counted in (default 15m).
	// Env: APP_LOCKOUT_WINDOW
	LockoutWindow time.Duration `env:"LOCKOUT_WINDOW"`

	// FailureDelay is the constant wait applied to every failed signin
	// (default 500ms). It must be positive: a zero value from any source is
	// treated as unset and the default applies.
	// Env: APP_FAILURE_DELAY
	FailureDelay time.Duration `env:"FAILURE_DELAY"`

	// BcryptCost is the bcrypt work factor for password hashes.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// Version is the semantic version string exposed via GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the zerolog level name (default "debug").
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver selects the backend: "sqlite3" (default) or "pgx" (PostgreSQL).
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name: a file path for SQLite or a PostgreSQL
	// connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TrustProxyHeaders makes the first X-Forwarded-For entry the client IP
	// for rate limiting and audit records. Enable it only behind a proxy
	// that overwrites the header.
	// Env: SERVER_TRUST_PROXY_HEADERS
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS"`
}

// Adapter holds configuration for the generation backend (Ollama) client.
type Adapter struct {
	// OllamaAddress is the base URL of the generation backend.
	// Env: ADAPTER_OLLAMA_ADDRESS
	OllamaAddress string `env:"OLLAMA_ADDRESS"`

	// RequestTimeout bounds every call to the backend.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SweepInterval is how often expired tokens and stale attempts are
	// deleted (default 1h).
	// Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`

	// AttemptRetention is how long login attempts are kept (default 168h).
	// Env: WORKERS_ATTEMPT_RETENTION
	AttemptRetention time.Duration `env:"ATTEMPT_RETENTION"`
}

// RateLimit configures the per-IP token bucket in front of the auth routes.
// The limiter is disabled when RedisAddress is empty.
type RateLimit struct {
	// Env: RATE_LIMIT_REDIS_ADDRESS
	RedisAddress string `env:"REDIS_ADDRESS"`
	// Env: RATE_LIMIT_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD"`
	// Env: RATE_LIMIT_REDIS_DB
	RedisDB int `env:"REDIS_DB"`
	// Capacity is the bucket size (default 20).
	// Env: RATE_LIMIT_CAPACITY
	Capacity int `env:"CAPACITY"`
	// RefillInterval is the time to regain one token (default 3s).
	// Env: RATE_LIMIT_REFILL_INTERVAL
	RefillInterval time.Duration `env:"REFILL_INTERVAL"`
}

// Broker configures the optional AMQP publisher for auth audit events.
// Events are discarded when AMQPURL is empty.
type Broker struct {
	// Env: BROKER_AMQP_URL
	AMQPURL string `env:"AMQP_URL"`
	// Queue is the durable queue events are published to (default "auth.events").
	// Env: BROKER_QUEUE
	Queue string `env:"QUEUE"`
}

// Redacted returns a copy of the configuration that is safe to log.
func (cfg StructuredConfig) Redacted() StructuredConfig {
	const mask = "******"
	if cfg.App.TokenSignKey != "" {
		cfg.App.TokenSignKey = mask
	}
	if cfg.RateLimit.RedisPassword != "" {
		cfg.RateLimit.RedisPassword = mask
	}
	if cfg.Broker.AMQPURL != "" {
		cfg.Broker.AMQPURL = mask
	}
	return cfg
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources. The first source that sets a
// field wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. .env file (path resolved from sources 1 and 2)
//  5. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDotEnv().
		withDefaults().
		build()
}
