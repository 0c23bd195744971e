// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files. Durations
// are written as strings ("30m") or as nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey         string   `json:"token_sign_key"`
		TokenIssuer          string   `json:"token_issuer"`
		AccessTokenDuration  Duration `json:"access_token_duration"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
		MaxLoginAttempts     int      `json:"max_login_attempts"`
		LockoutWindow        Duration `json:"lockout_window"`
		FailureDelay         Duration `json:"failure_delay"`
		BcryptCost           int      `json:"bcrypt_cost"`
		Version              string   `json:"version"`
		LogLevel             string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress       string   `json:"http_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		TrustProxyHeaders bool     `json:"trust_proxy_headers"`
	} `json:"server,omitempty"`

	Adapter struct {
		OllamaAddress  string   `json:"ollama_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SweepInterval    Duration `json:"sweep_interval"`
		AttemptRetention Duration `json:"attempt_retention"`
	} `json:"workers,omitempty"`

	RateLimit struct {
		RedisAddress   string   `json:"redis_address"`
		RedisPassword  string   `json:"redis_password"`
		RedisDB        int      `json:"redis_db"`
		Capacity       int      `json:"capacity"`
		RefillInterval Duration `json:"refill_interval"`
	} `json:"rate_limit,omitempty"`

	Broker struct {
		AMQPURL string `json:"amqp_url"`
		Queue   string `json:"queue"`
	} `json:"broker,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:         jsonCfg.App.TokenSignKey,
			TokenIssuer:          jsonCfg.App.TokenIssuer,
			AccessTokenDuration:  time.Duration(jsonCfg.App.AccessTokenDuration),
			RefreshTokenDuration: time.Duration(jsonCfg.App.RefreshTokenDuration),
			MaxLoginAttempts:     jsonCfg.App.MaxLoginAttempts,
			LockoutWindow:        time.Duration(jsonCfg.App.LockoutWindow),
			FailureDelay:         time.Duration(jsonCfg.App.FailureDelay),
			BcryptCost:           jsonCfg.App.BcryptCost,
			Version:              jsonCfg.App.Version,
			LogLevel:             jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			RequestTimeout:    time.Duration(jsonCfg.Server.RequestTimeout),
			TrustProxyHeaders: jsonCfg.Server.TrustProxyHeaders,
		},
		Adapter: Adapter{
			OllamaAddress:  jsonCfg.Adapter.OllamaAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SweepInterval:    time.Duration(jsonCfg.Workers.SweepInterval),
			AttemptRetention: time.Duration(jsonCfg.Workers.AttemptRetention),
		},
		RateLimit: RateLimit{
			RedisAddress:   jsonCfg.RateLimit.RedisAddress,
			RedisPassword:  jsonCfg.RateLimit.RedisPassword,
			RedisDB:        jsonCfg.RateLimit.RedisDB,
			Capacity:       jsonCfg.RateLimit.Capacity,
			RefillInterval: time.Duration(jsonCfg.RateLimit.RefillInterval),
		},
		Broker: Broker{
			AMQPURL: jsonCfg.Broker.AMQPURL,
			Queue:   jsonCfg.Broker.Queue,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
