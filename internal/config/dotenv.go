// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

const defaultDotEnvPath = ".env"

// parseDotEnv reads KEY=VALUE pairs from a .env file and maps them with the
// same tags as the process environment. The process environment itself is
// left untouched.
//
// When path is empty the default ".env" is tried. A missing file is an error
// only when required is set; otherwise (nil, nil) is returned.
func parseDotEnv(path string, required bool) (*StructuredConfig, error) {
	if path == "" {
		path = defaultDotEnvPath
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading .env file %q: %w", path, err)
	}

	cfg := &StructuredConfig{}
	if err = parseEnvMap(cfg, vars); err != nil {
		return nil, err
	}

	return cfg, nil
}
