// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the auth service.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Request tracing, access logging, security headers, per-client rate
// limiting and bearer-token authentication are handled in this package
// before requests are delegated to the service layer. Service errors are
// translated into JSON error bodies by errors_mapper.go.
package http
