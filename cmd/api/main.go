package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gravadigital/conexa-api/internal/config"
	"github.com/gravadigital/conexa-api/internal/logger"
	"github.com/gravadigital/conexa-api/internal/server"
	"github.com/gravadigital/conexa-api/internal/storage"
	"github.com/gravadigital/conexa-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.LogLevel)
	log := logger.Get()

	log.Info("Starting Conexa API")

	container, err := storage.DefaultFactory().CreateContainer(cfg)
	if err != nil {
		log.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := postgres.Close(); err != nil {
			log.Error("Failed to close database connection", "error", err)
		}
	}()

	srv := server.New(cfg, container)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server error", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		log.Info("Received shutdown signal", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Stop(ctx); err != nil {
			log.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}

	log.Info("Conexa API stopped")
}
