package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"framevault/internal/config"
	"framevault/internal/db"
	"framevault/internal/logging"
	"framevault/internal/metrics"
	"framevault/internal/recordstore"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logging.Init(cfg.SlogLevel())

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		slog.Error("failed to open record store backend", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeBackend()

	seed, err := config.LoadSeed(cfg.SeedFile)
	if err != nil {
		slog.Error("failed to load seed file", "path", cfg.SeedFile, "error", err)
		os.Exit(1)
	}
	created, err := recordstore.Seed(ctx, backend, seed)
	if err != nil {
		slog.Error("failed to seed record store", "error", err)
		os.Exit(1)
	}
	if created > 0 {
		slog.Info("seeded demo data", "users", created)
	}

	metrics.InitStore(recordstore.Counts(backend))

	app := recordstore.New(backend, recordstore.Options{AccessLog: cfg.IsDev()})
	app.Get("/metrics", metrics.Handler())

	// Graceful shutdown
	go func() {
		slog.Info("starting record store", "addr", cfg.StoreAddr, "backend", cfg.StoreBackend)
		if err := app.Listen(cfg.StoreAddr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			slog.Error("record store error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down record store")
	if err := app.Shutdown(); err != nil {
		slog.Error("record store forced to shutdown", "error", err)
	}
}

func openBackend(ctx context.Context, cfg *config.Config) (recordstore.Backend, func(), error) {
	if cfg.StoreBackend == "memory" {
		slog.Warn("using the in-memory backend, records are lost on restart")
		return db.NewMemory(), func() {}, nil
	}

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		database.Close()
		return nil, nil, err
	}
	slog.Info("migrations completed successfully")
	return database, database.Close, nil
}
