package server

import (
	"context"
	"log/slog"

	"framevault/internal/account"
	"framevault/internal/handlers"
	"framevault/internal/handlers/api"
	"framevault/internal/metrics"
	"framevault/internal/middleware"
	"framevault/internal/session"
	"framevault/internal/share"
	"framevault/internal/storeclient"
)

// Deps are the services the routes are built on.
type Deps struct {
	Store    *storeclient.Client
	Accounts *account.Service
	Shares   *share.Service
	Holder   *session.Holder
	// Ready answers readiness probes. Defaults to pinging Store directly.
	Ready handlers.Pinger
	// Uploads is nil when object storage is not configured.
	Uploads handlers.Uploader
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, deps Deps) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(deps.Holder)

	ready := deps.Ready
	if ready == nil {
		ready = deps.Store
	}

	// Initialize handlers
	homeHandler := handlers.NewHomeHandler(s.Cfg)
	authHandler := handlers.NewAuthHandler(deps.Accounts, deps.Holder, s.Cfg)
	albumHandler := handlers.NewAlbumHandler(deps.Store, deps.Shares, deps.Uploads, s.Cfg)
	sharedHandler := handlers.NewSharedAlbumHandler(deps.Shares, s.Cfg)
	probeHandler := handlers.NewProbeHandler(ready)
	apiShareHandler := api.NewShareHandler(deps.Store, deps.Shares)

	// Probes
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", metrics.Handler())

	// Auth routes
	s.App.Get("/login", authHandler.ShowLogin)
	s.App.Post("/login", authHandler.Login)
	s.App.Get("/signup", authHandler.ShowSignup)
	s.App.Post("/signup", authHandler.Signup)
	s.App.Post("/logout", authHandler.Logout)

	if s.Cfg.OIDCEnabled() {
		if err := authHandler.EnableOIDC(ctx); err != nil {
			return err
		}
		s.App.Get("/auth/oidc/login", authHandler.OIDCLogin)
		s.App.Get("/auth/oidc/callback", authHandler.OIDCCallback)
	} else {
		slog.Info("OIDC login disabled, set OIDC_ISSUER to enable")
	}

	// Public pages
	s.App.Get("/", authMiddleware.OptionalAuth, homeHandler.Index)
	s.App.Get("/s/:token", authMiddleware.OptionalAuth, sharedHandler.Show)

	// Owner pages
	s.App.Get("/dashboard", authMiddleware.RequireAuth, albumHandler.Dashboard)
	s.App.Post("/albums", authMiddleware.RequireAuth, albumHandler.CreateAlbum)
	s.App.Post("/albums/:id/delete", authMiddleware.RequireAuth, albumHandler.DeleteAlbum)
	s.App.Get("/album/:id", authMiddleware.RequireAuth, albumHandler.Show)
	s.App.Post("/album/:id/photos", authMiddleware.RequireAuth, albumHandler.AddPhoto)
	s.App.Post("/album/:id/share", authMiddleware.RequireAuth, albumHandler.Share)
	s.App.Post("/photos/:id/delete", authMiddleware.RequireAuth, albumHandler.DeletePhoto)

	// JSON API
	s.App.Get("/api/shares/:token", apiShareHandler.Resolve)
	s.App.Post("/api/albums/:id/shares", authMiddleware.RequireAuthAPI, apiShareHandler.Issue)
	s.App.Get("/api/albums/:id/shares", authMiddleware.RequireAuthAPI, apiShareHandler.List)

	return nil
}
