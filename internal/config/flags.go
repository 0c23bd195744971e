// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the command-line arguments (without the program name).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-db-driver database driver (sqlite3 or pgx)
//	-c/-config json file path with configs
//	-env-file .env file path
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-access-token-duration access token lifetime (e.g. "30m")
//	-refresh-token-duration refresh token lifetime (e.g. "168h")
//	-max-login-attempts failed signins before lockout
//	-lockout-window window failed signins are counted in (e.g. "15m")
//	-failure-delay delay applied to failed signins (e.g. "500ms")
//	-bcrypt-cost bcrypt work factor
//	-request-timeout request timeout (e.g. "30s", "1m")
//	-trust-proxy-headers take the client IP from X-Forwarded-For
//	-ollama-address generation backend base URL
//	-sweep-interval cleanup interval (e.g. "1h")
//	-log-level log level
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN, databaseDriver string
	var jsonConfigPath, dotEnvPath string
	var tokenSignKey, tokenIssuer string
	var accessTokenDuration, refreshTokenDuration time.Duration
	var maxLoginAttempts int
	var lockoutWindow, failureDelay time.Duration
	var bcryptCost int
	var requestTimeout time.Duration
	var trustProxyHeaders bool
	var ollamaAddress string
	var sweepInterval time.Duration
	var logLevel string

	fs := flag.NewFlagSet("go-rag-auth", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "db-driver", "", "Database driver (sqlite3 or pgx)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&dotEnvPath, "env-file", "", ".env file path")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&accessTokenDuration, "access-token-duration", 0, "Access token duration (e.g., 30m)")
	fs.DurationVar(&refreshTokenDuration, "refresh-token-duration", 0, "Refresh token duration (e.g., 168h)")
	fs.IntVar(&maxLoginAttempts, "max-login-attempts", 0, "Failed signins before lockout")
	fs.DurationVar(&lockoutWindow, "lockout-window", 0, "Lockout window (e.g., 15m)")
	fs.DurationVar(&failureDelay, "failure-delay", 0, "Delay applied to failed signins (e.g., 500ms)")
	fs.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt cost")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.BoolVar(&trustProxyHeaders, "trust-proxy-headers", false, "Take the client IP from X-Forwarded-For")
	fs.StringVar(&ollamaAddress, "ollama-address", "", "Generation backend base URL")
	fs.DurationVar(&sweepInterval, "sweep-interval", 0, "Cleanup interval (e.g., 1h)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:         tokenSignKey,
			TokenIssuer:          tokenIssuer,
			AccessTokenDuration:  accessTokenDuration,
			RefreshTokenDuration: refreshTokenDuration,
			MaxLoginAttempts:     maxLoginAttempts,
			LockoutWindow:        lockoutWindow,
			FailureDelay:         failureDelay,
			BcryptCost:           bcryptCost,
			LogLevel:             logLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:       serverAddress.String(),
			RequestTimeout:    requestTimeout,
			TrustProxyHeaders: trustProxyHeaders,
		},
		Adapter: Adapter{
			OllamaAddress: ollamaAddress,
		},
		Workers: Workers{
			SweepInterval: sweepInterval,
		},
		JSONFilePath: jsonConfigPath,
		DotEnvPath:   dotEnvPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
