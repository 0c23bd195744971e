// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the service.
//
// Configuration is assembled from multiple sources; the first source that
// sets a field wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. .env file
//  5. Built-in defaults
//
// The main entry point is [GetStructuredConfig].
package config
