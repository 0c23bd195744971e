// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(*StructuredConfig) {}},
		{name: "empty sign key", mutate: func(c *StructuredConfig) { c.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "zero access duration", mutate: func(c *StructuredConfig) { c.App.AccessTokenDuration = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "zero max attempts", mutate: func(c *StructuredConfig) { c.App.MaxLoginAttempts = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "zero lockout window", mutate: func(c *StructuredConfig) { c.App.LockoutWindow = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "negative failure delay", mutate: func(c *StructuredConfig) { c.App.FailureDelay = -1 }, wantErr: ErrInvalidAppConfigs},
		{name: "zero failure delay", mutate: func(c *StructuredConfig) { c.App.FailureDelay = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "bcrypt cost too high", mutate: func(c *StructuredConfig) { c.App.BcryptCost = 40 }, wantErr: ErrInvalidAppConfigs},
		{name: "empty dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "unknown driver", mutate: func(c *StructuredConfig) { c.Storage.DB.Driver = "mysql" }, wantErr: ErrInvalidStorageConfigs},
		{name: "postgres driver", mutate: func(c *StructuredConfig) { c.Storage.DB.Driver = DriverPostgres }},
		{name: "empty address", mutate: func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{name: "zero sweep interval", mutate: func(c *StructuredConfig) { c.Workers.SweepInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
