package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"framevault/internal/config"
	"framevault/internal/share"
)

// SharedAlbumHandler serves the public page behind a share link.
type SharedAlbumHandler struct {
	shares *share.Service
	cfg    *config.Config
	now    func() time.Time
}

// NewSharedAlbumHandler creates a new shared album handler.
func NewSharedAlbumHandler(shares *share.Service, cfg *config.Config) *SharedAlbumHandler {
	return &SharedAlbumHandler{shares: shares, cfg: cfg, now: time.Now}
}

// Show resolves the token and renders the album read-only. Failures render
// the same page with a message in place of the photos.
func (h *SharedAlbumHandler) Show(c fiber.Ctx) error {
	res, err := h.shares.Resolve(c.Context(), c.Params("token"), h.now())
	if err != nil {
		status := share.Status(err)
		if status >= fiber.StatusInternalServerError {
			slog.Error("failed to resolve share link", "error", err)
		}
		return c.Status(status).Render("shared", page(c, h.cfg, fiber.Map{
			"Title": "Shared album",
			"Error": share.Message(err),
		}))
	}

	return c.Render("shared", page(c, h.cfg, fiber.Map{
		"Title":  res.Album.Title,
		"Album":  res.Album,
		"Photos": res.Photos,
		"Share":  res.Share,
	}))
}
