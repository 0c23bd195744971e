// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Default values applied to every field no other source has set.
const (
	DefaultTokenIssuer          = "go-rag-auth"
	DefaultAccessTokenDuration  = 30 * time.Minute
	DefaultRefreshTokenDuration = 7 * 24 * time.Hour
	DefaultMaxLoginAttempts     = 5
	DefaultLockoutWindow        = 15 * time.Minute
	DefaultFailureDelay         = 500 * time.Millisecond
	DefaultVersion              = "dev"
	DefaultLogLevel             = "debug"

	DefaultDBDriver = DriverSQLite
	DefaultDBDSN    = "auth.db"

	DefaultHTTPAddress    = "localhost:8000"
	DefaultRequestTimeout = 60 * time.Second

	DefaultOllamaAddress         = "http://localhost:11434"
	DefaultAdapterRequestTimeout = 10 * time.Second

	DefaultSweepInterval    = time.Hour
	DefaultAttemptRetention = 7 * 24 * time.Hour

	DefaultRateLimitCapacity       = 20
	DefaultRateLimitRefillInterval = 3 * time.Second

	DefaultBrokerQueue = "auth.events"
)

// Supported values of DB.Driver.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// signKeyBytes is the entropy of a generated signing key.
const signKeyBytes = 32

// defaults returns the lowest-priority configuration source, including a
// freshly generated random signing key.
func defaults() (*StructuredConfig, error) {
	signKey, err := randomSignKey()
	if err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:         signKey,
			TokenIssuer:          DefaultTokenIssuer,
			AccessTokenDuration:  DefaultAccessTokenDuration,
			RefreshTokenDuration: DefaultRefreshTokenDuration,
			MaxLoginAttempts:     DefaultMaxLoginAttempts,
			LockoutWindow:        DefaultLockoutWindow,
			FailureDelay:         DefaultFailureDelay,
			BcryptCost:           bcrypt.DefaultCost,
			Version:              DefaultVersion,
			LogLevel:             DefaultLogLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: DefaultDBDriver,
				DSN:    DefaultDBDSN,
			},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			OllamaAddress:  DefaultOllamaAddress,
			RequestTimeout: DefaultAdapterRequestTimeout,
		},
		Workers: Workers{
			SweepInterval:    DefaultSweepInterval,
			AttemptRetention: DefaultAttemptRetention,
		},
		RateLimit: RateLimit{
			Capacity:       DefaultRateLimitCapacity,
			RefillInterval: DefaultRateLimitRefillInterval,
		},
		Broker: Broker{
			Queue: DefaultBrokerQueue,
		},
	}, nil
}

func randomSignKey() (string, error) {
	buf := make([]byte, signKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating token sign key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
