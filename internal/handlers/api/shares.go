package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"framevault/internal/middleware"
	"framevault/internal/models"
	"framevault/internal/share"
)

// AlbumGetter loads albums for the owner check.
type AlbumGetter interface {
	GetAlbum(ctx context.Context, id string) (*models.Album, bool, error)
}

// ShareHandler exposes the share-link lifecycle as JSON.
type ShareHandler struct {
	albums AlbumGetter
	shares *share.Service
	now    func() time.Time
}

// NewShareHandler creates a new API share handler.
func NewShareHandler(albums AlbumGetter, shares *share.Service) *ShareHandler {
	return &ShareHandler{albums: albums, shares: shares, now: time.Now}
}

// Issue generates a new share link for an album owned by the caller.
func (h *ShareHandler) Issue(c fiber.Ctx) error {
	album, status, message := h.ownedAlbum(c)
	if album == nil {
		return jsonError(c, status, message)
	}

	issued, err := h.shares.Issue(c.Context(), album.ID, h.now())
	if err != nil {
		slog.Error("failed to issue share link", "album_id", album.ID, "error", err)
		return jsonError(c, fiber.StatusBadGateway, "failed to generate share link")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data": models.IssuedShareResponse{
			URL:       issued.URL,
			Token:     issued.Share.Token,
			AlbumID:   issued.Share.AlbumID,
			CreatedAt: issued.Share.CreatedAt,
			ExpiresAt: issued.Share.ExpiresAt,
		},
	})
}

// List returns every share of an album owned by the caller, expired ones
// included.
func (h *ShareHandler) List(c fiber.Ctx) error {
	album, status, message := h.ownedAlbum(c)
	if album == nil {
		return jsonError(c, status, message)
	}

	shares, err := h.shares.ListForAlbum(c.Context(), album.ID, h.now())
	if err != nil {
		slog.Error("failed to list shares", "album_id", album.ID, "error", err)
		return jsonError(c, fiber.StatusBadGateway, "failed to load share links")
	}

	out := make([]models.IssuedShareResponse, 0, len(shares))
	for _, sh := range shares {
		out = append(out, models.IssuedShareResponse{
			URL:       sh.URL,
			Token:     sh.Token,
			AlbumID:   sh.AlbumID,
			CreatedAt: sh.CreatedAt,
			ExpiresAt: sh.ExpiresAt,
			Expired:   sh.Expired,
		})
	}
	return jsonSuccess(c, out)
}

// Resolve returns the album and photos behind a share token. It needs no
// session.
func (h *ShareHandler) Resolve(c fiber.Ctx) error {
	res, err := h.shares.Resolve(c.Context(), c.Params("token"), h.now())
	if err != nil {
		return jsonError(c, share.Status(err), share.Message(err))
	}

	photos := res.Photos
	if photos == nil {
		photos = []models.Photo{}
	}
	return jsonSuccess(c, models.SharedAlbumResponse{
		Album:  res.Album,
		Photos: photos,
	})
}

func (h *ShareHandler) ownedAlbum(c fiber.Ctx) (*models.Album, int, string) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, fiber.StatusUnauthorized, "unauthorized"
	}

	album, found, err := h.albums.GetAlbum(c.Context(), c.Params("id"))
	if err != nil {
		slog.Error("failed to load album", "album_id", c.Params("id"), "error", err)
		return nil, fiber.StatusBadGateway, "failed to load album"
	}
	if !found || !album.OwnedBy(user.ID) {
		return nil, fiber.StatusNotFound, "album not found"
	}
	return album, 0, ""
}
