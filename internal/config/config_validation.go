// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	app := cfg.App
	switch {
	case app.TokenSignKey == "":
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	case app.AccessTokenDuration <= 0 || app.RefreshTokenDuration <= 0:
		return fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs)
	case app.MaxLoginAttempts <= 0:
		return fmt.Errorf("%w: max login attempts must be positive", ErrInvalidAppConfigs)
	case app.LockoutWindow <= 0:
		return fmt.Errorf("%w: lockout window must be positive", ErrInvalidAppConfigs)
	case app.FailureDelay <= 0:
		return fmt.Errorf("%w: failure delay must be positive", ErrInvalidAppConfigs)
	case app.BcryptCost < bcrypt.MinCost || app.BcryptCost > bcrypt.MaxCost:
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidAppConfigs, app.BcryptCost)
	}

	db := cfg.Storage.DB
	if db.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}
	if db.Driver != DriverSQLite && db.Driver != DriverPostgres {
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, db.Driver)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.SweepInterval <= 0 || cfg.Workers.AttemptRetention <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
