// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error

	// generatedSignKey is the random key contributed by withDefaults.
	generatedSignKey string
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 5),
	}
}

// build merges the collected configs in registration order. mergo only fills
// zero fields of the destination, so earlier sources take priority.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	config.App.EphemeralSignKey = b.generatedSignKey != "" && config.App.TokenSignKey == b.generatedSignKey

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	jsonPath := b.firstNonEmpty(func(cfg *StructuredConfig) string { return cfg.JSONFilePath })
	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, jsonCfg)
	return b
}

func (b *configBuilder) withDotEnv() *configBuilder {
	path := b.firstNonEmpty(func(cfg *StructuredConfig) string { return cfg.DotEnvPath })

	dotEnvCfg, err := parseDotEnv(path, path != "")
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	if dotEnvCfg != nil {
		b.configs = append(b.configs, dotEnvCfg)
	}
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	defaultCfg, err := defaults()
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.generatedSignKey = defaultCfg.App.TokenSignKey
	b.configs = append(b.configs, defaultCfg)
	return b
}

// firstNonEmpty returns the first non-empty value picked from the configs
// registered so far, honouring source priority.
func (b *configBuilder) firstNonEmpty(pick func(*StructuredConfig) string) string {
	for _, cfg := range b.configs {
		if v := pick(cfg); v != "" {
			return v
		}
	}
	return ""
}
