package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"framevault/internal/account"
	"framevault/internal/config"
	"framevault/internal/jobs"
	"framevault/internal/logging"
	"framevault/internal/metrics"
	"framevault/internal/photostore"
	"framevault/internal/server"
	"framevault/internal/session"
	"framevault/internal/share"
	"framevault/internal/storeclient"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	logging.Init(cfg.SlogLevel())
	metrics.InitApp()

	if cfg.SessionSecret == "" {
		if !cfg.IsDev() {
			slog.Error("SESSION_SECRET is required outside development")
			os.Exit(1)
		}
		cfg.SessionSecret = "framevault-development-secret"
		slog.Warn("SESSION_SECRET not set, using the development default")
	}

	// Record store client
	store := storeclient.New(cfg.StoreURL, cfg.StoreTimeout)

	deps := server.Deps{
		Store:    store,
		Accounts: account.NewService(store),
		Shares:   share.NewService(store, cfg.BaseURL, share.WithValidityDays(cfg.ShareValidityDays)),
		Holder:   session.NewHolder(cfg.SessionTTL),
	}

	// Readiness follows a background ping of the record store
	watcher := jobs.NewStoreWatcher(store, 15*time.Second, cfg.StoreTimeout)
	go watcher.Start(ctx)
	deps.Ready = watcher

	// Photo uploads are optional
	if cfg.UploadsEnabled() {
		uploads, err := photostore.NewMinioStore(ctx, photostore.Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		})
		if err != nil {
			slog.Error("failed to initialize photo storage", "error", err)
			os.Exit(1)
		}
		deps.Uploads = uploads
		slog.Info("photo uploads enabled", "bucket", cfg.MinioBucket)
	}

	srv := server.New(cfg, session.NewStorage(cfg.RedisURL))
	if err := srv.RegisterRoutes(ctx, deps); err != nil {
		slog.Error("failed to register routes", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	cancel()
	if err := srv.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}
