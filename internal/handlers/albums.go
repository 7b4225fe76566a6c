package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"framevault/internal/config"
	"framevault/internal/middleware"
	"framevault/internal/models"
	"framevault/internal/photostore"
	"framevault/internal/share"
	"framevault/internal/validation"
)

// AlbumStore is the part of the record store the album pages use.
type AlbumStore interface {
	GetAlbum(ctx context.Context, id string) (*models.Album, bool, error)
	ListAlbumsByUser(ctx context.Context, userID string) ([]models.Album, error)
	CreateAlbum(ctx context.Context, album *models.Album) (*models.Album, error)
	DeleteAlbum(ctx context.Context, id string) error
	GetPhoto(ctx context.Context, id string) (*models.Photo, bool, error)
	ListPhotosByAlbum(ctx context.Context, albumID string) ([]models.Photo, error)
	CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error)
	DeletePhoto(ctx context.Context, id string) error
}

// Uploader stores photo files and hands back their public URL.
type Uploader interface {
	Upload(ctx context.Context, albumID string, r io.Reader, size int64, contentType string, maxBytes int64) (string, error)
	Remove(ctx context.Context, url string) error
}

// AlbumHandler serves the dashboard and the owner's album pages.
type AlbumHandler struct {
	store   AlbumStore
	shares  *share.Service
	uploads Uploader
	cfg     *config.Config
	now     func() time.Time
}

// NewAlbumHandler creates a new album handler. uploads may be nil, in which
// case photos can only be added by URL.
func NewAlbumHandler(store AlbumStore, shares *share.Service, uploads Uploader, cfg *config.Config) *AlbumHandler {
	return &AlbumHandler{
		store:   store,
		shares:  shares,
		uploads: uploads,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Dashboard lists the current user's albums.
func (h *AlbumHandler) Dashboard(c fiber.Ctx) error {
	return h.renderDashboard(c, fiber.Map{})
}

func (h *AlbumHandler) renderDashboard(c fiber.Ctx, data fiber.Map) error {
	user, _ := middleware.CurrentUser(c)

	albums, err := h.store.ListAlbumsByUser(c.Context(), user.ID)
	if err != nil {
		slog.Error("failed to list albums", "user_id", user.ID, "error", err)
		setError(data, "Failed to load albums")
	}

	data["Title"] = "My albums"
	data["Albums"] = albums
	return c.Render("dashboard", page(c, h.cfg, data))
}

// CreateAlbum handles the new-album form.
func (h *AlbumHandler) CreateAlbum(c fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	title := c.FormValue("title")
	eventDate := c.FormValue("eventDate")

	date, err := validation.ValidateAlbum(title, eventDate)
	if err != nil {
		return h.renderDashboard(c, fiber.Map{
			"Error":     err.Error(),
			"FormTitle": title,
			"FormDate":  eventDate,
		})
	}

	_, err = h.store.CreateAlbum(c.Context(), &models.Album{
		UserID:    user.ID,
		Title:     strings.TrimSpace(title),
		EventDate: date,
		CreatedAt: models.DateOf(h.now()),
	})
	if err != nil {
		slog.Error("failed to create album", "user_id", user.ID, "error", err)
		return h.renderDashboard(c, fiber.Map{
			"Error":     "Failed to create album",
			"FormTitle": title,
			"FormDate":  eventDate,
		})
	}

	return c.Redirect().To("/dashboard")
}

// DeleteAlbum removes an album. Its photos and shares stay in the store;
// shares to a deleted album resolve as not found.
func (h *AlbumHandler) DeleteAlbum(c fiber.Ctx) error {
	album, err := h.ownedAlbum(c, c.Params("id"))
	if err != nil {
		return err
	}

	if err := h.store.DeleteAlbum(c.Context(), album.ID); err != nil {
		slog.Error("failed to delete album", "album_id", album.ID, "error", err)
		return h.renderDashboard(c, fiber.Map{"Error": "Failed to delete album"})
	}

	return c.Redirect().To("/dashboard")
}

// Show renders one album with its photos and share links.
func (h *AlbumHandler) Show(c fiber.Ctx) error {
	album, err := h.ownedAlbum(c, c.Params("id"))
	if err != nil {
		return err
	}
	return h.renderAlbum(c, album, fiber.Map{})
}

func (h *AlbumHandler) renderAlbum(c fiber.Ctx, album *models.Album, data fiber.Map) error {
	photos, err := h.store.ListPhotosByAlbum(c.Context(), album.ID)
	if err != nil {
		slog.Error("failed to list photos", "album_id", album.ID, "error", err)
		setError(data, "Failed to load photos")
	}

	shares, err := h.shares.ListForAlbum(c.Context(), album.ID, h.now())
	if err != nil {
		slog.Error("failed to list shares", "album_id", album.ID, "error", err)
		setError(data, "Failed to load share links")
	}

	data["Title"] = album.Title
	data["Album"] = album
	data["Photos"] = photos
	data["Shares"] = shares
	data["UploadsEnabled"] = h.uploads != nil
	return c.Render("album", page(c, h.cfg, data))
}

// AddPhoto adds a photo by URL or, when uploads are enabled and a file was
// sent, by storing the file.
func (h *AlbumHandler) AddPhoto(c fiber.Ctx) error {
	album, err := h.ownedAlbum(c, c.Params("id"))
	if err != nil {
		return err
	}

	caption := c.FormValue("caption")
	if err := validation.ValidateCaption(caption); err != nil {
		return h.renderAlbum(c, album, fiber.Map{"Error": err.Error()})
	}

	url, message := h.photoURL(c, album.ID)
	if message != "" {
		return h.renderAlbum(c, album, fiber.Map{"Error": message, "FormCaption": caption})
	}

	_, err = h.store.CreatePhoto(c.Context(), &models.Photo{
		AlbumID:    album.ID,
		URL:        url,
		Caption:    caption,
		UploadedAt: models.DateOf(h.now()),
	})
	if err != nil {
		slog.Error("failed to add photo", "album_id", album.ID, "error", err)
		return h.renderAlbum(c, album, fiber.Map{"Error": "Failed to add photo"})
	}

	return c.Redirect().To("/album/" + album.ID)
}

// photoURL returns the URL for the submitted photo, or a message for the
// user when none could be produced.
func (h *AlbumHandler) photoURL(c fiber.Ctx, albumID string) (string, string) {
	if h.uploads != nil {
		if fh, err := c.FormFile("photo"); err == nil && fh.Size > 0 {
			f, err := fh.Open()
			if err != nil {
				return "", "Failed to read uploaded file"
			}
			defer f.Close()

			url, err := h.uploads.Upload(c.Context(), albumID, f, fh.Size, fh.Header.Get("Content-Type"), h.cfg.UploadMaxBytes)
			switch {
			case errors.Is(err, photostore.ErrNotImage):
				return "", "Only image files can be uploaded"
			case errors.Is(err, photostore.ErrTooLarge):
				return "", "File is too large"
			case err != nil:
				slog.Error("photo upload failed", "album_id", albumID, "error", err)
				return "", "Failed to upload photo"
			}
			return url, ""
		}
	}

	url := c.FormValue("url")
	if ok, message := validation.ValidateURL(url); !ok {
		return "", message
	}
	return url, ""
}

// DeletePhoto removes a photo from an album the user owns.
func (h *AlbumHandler) DeletePhoto(c fiber.Ctx) error {
	photo, found, err := h.store.GetPhoto(c.Context(), c.Params("id"))
	if err != nil {
		slog.Error("failed to load photo", "photo_id", c.Params("id"), "error", err)
		return fiber.NewError(fiber.StatusBadGateway, "Failed to delete photo")
	}
	if !found {
		return notFound()
	}

	album, err := h.ownedAlbum(c, photo.AlbumID)
	if err != nil {
		return err
	}

	if err := h.store.DeletePhoto(c.Context(), photo.ID); err != nil {
		slog.Error("failed to delete photo", "photo_id", photo.ID, "error", err)
		return h.renderAlbum(c, album, fiber.Map{"Error": "Failed to delete photo"})
	}

	if h.uploads != nil {
		if err := h.uploads.Remove(c.Context(), photo.URL); err != nil {
			slog.Warn("failed to remove photo object", "photo_id", photo.ID, "error", err)
		}
	}

	return c.Redirect().To("/album/" + album.ID)
}

// Share issues a new share link for the album. htmx requests get just the
// link fragment back.
func (h *AlbumHandler) Share(c fiber.Ctx) error {
	album, err := h.ownedAlbum(c, c.Params("id"))
	if err != nil {
		return err
	}

	issued, err := h.shares.Issue(c.Context(), album.ID, h.now())
	if err != nil {
		slog.Error("failed to issue share link", "album_id", album.ID, "error", err)
		if isHTMX(c) {
			return htmxError(c, share.Message(err))
		}
		return h.renderAlbum(c, album, fiber.Map{"Error": share.Message(err)})
	}

	if isHTMX(c) {
		return c.Render("partials/share_link", fiber.Map{"Issued": issued}, "")
	}
	return h.renderAlbum(c, album, fiber.Map{"Issued": issued})
}

// ownedAlbum loads the album and checks it belongs to the current user.
// Missing and foreign albums are indistinguishable to the caller.
func (h *AlbumHandler) ownedAlbum(c fiber.Ctx, id string) (*models.Album, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, notFound()
	}

	album, found, err := h.store.GetAlbum(c.Context(), id)
	if err != nil {
		slog.Error("failed to load album", "album_id", id, "error", err)
		return nil, fiber.NewError(fiber.StatusBadGateway, "Failed to load album")
	}
	if !found || !album.OwnedBy(user.ID) {
		return nil, notFound()
	}
	return album, nil
}

func setError(data fiber.Map, message string) {
	if _, set := data["Error"]; !set {
		data["Error"] = message
	}
}
