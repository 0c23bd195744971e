// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-rag-auth/internal/adapter"
	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/events"
	"github.com/MKhiriev/go-rag-auth/internal/handler"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/ratelimit"
	"github.com/MKhiriev/go-rag-auth/internal/server"
	"github.com/MKhiriev/go-rag-auth/internal/service"
	"github.com/MKhiriev/go-rag-auth/internal/store"
	"github.com/MKhiriev/go-rag-auth/internal/workers"
	"github.com/MKhiriev/go-rag-auth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-rag-auth")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err := logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	if cfg.App.EphemeralSignKey {
		log.Warn().Msg("no token sign key configured, using a random one: tokens will not survive a restart")
	}
	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	publisher, err := events.NewPublisher(cfg.Broker, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating event publisher")
	}
	defer publisher.Close()

	services, err := service.NewServices(storages, *cfg, publisher, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	modelAdapter, err := adapter.NewOllamaAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating generation backend adapter")
	}

	var limiter ratelimit.Limiter
	if cfg.RateLimit.RedisAddress != "" {
		redisLimiter, err := ratelimit.NewRedisLimiter(ctx, cfg.RateLimit, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating rate limiter")
		}
		defer redisLimiter.Close()
		limiter = redisLimiter
	}

	handlers, err := handler.NewHandlers(services, modelAdapter, limiter, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	bgWorkers := workers.NewWorkers(storages, cfg.Workers, log)
	bgWorkers.Run(ctx)

	if err := srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}

	cancel()
	bgWorkers.Wait()
}

func printBuildInfo() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	fmt.Printf("Build version: %s\n", info.BuildVersion)
	fmt.Printf("Build date: %s\n", info.BuildDate)
	fmt.Printf("Build commit: %s\n", info.BuildCommit)
}
