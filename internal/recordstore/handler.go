package recordstore

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"framevault/internal/db"
)

// Handler serves the record store REST contract.
type Handler struct {
	backend     Backend
	collections map[string]collection
}

// NewHandler creates a record store handler over backend.
func NewHandler(backend Backend) *Handler {
	return &Handler{
		backend:     backend,
		collections: collections(backend, time.Now),
	}
}

// Register mounts the record store routes on r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/healthz", h.Health)
	r.Get("/:collection", h.List)
	r.Get("/:collection/:id", h.Get)
	r.Post("/:collection", h.Create)
	r.Delete("/:collection/:id", h.Delete)
}

func storeError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (h *Handler) lookup(c fiber.Ctx) (collection, bool) {
	col, ok := h.collections[c.Params("collection")]
	return col, ok
}

// Health reports whether the backend answers.
func (h *Handler) Health(c fiber.Ctx) error {
	if err := h.backend.Ping(c.Context()); err != nil {
		slog.Error("record store backend unreachable", "error", err)
		return storeError(c, fiber.StatusServiceUnavailable, "backend unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// List returns every record matching the query filters, or [] when none do.
func (h *Handler) List(c fiber.Ctx) error {
	col, ok := h.lookup(c)
	if !ok {
		return storeError(c, fiber.StatusNotFound, "unknown collection")
	}

	query := c.Queries()
	matchesNothing := false
	for field, value := range query {
		if !col.filters[field] {
			return storeError(c, fiber.StatusBadRequest, "unsupported filter: "+field)
		}
		// Filterable fields are required on create, so no record holds "".
		if value == "" {
			matchesNothing = true
		}
	}
	if matchesNothing {
		return c.JSON([]any{})
	}

	records, err := col.list(c.Context(), query)
	if err != nil {
		slog.Error("failed to list records", "collection", c.Params("collection"), "error", err)
		return storeError(c, fiber.StatusInternalServerError, "failed to list records")
	}
	return c.JSON(records)
}

// Get returns one record by id.
func (h *Handler) Get(c fiber.Ctx) error {
	col, ok := h.lookup(c)
	if !ok {
		return storeError(c, fiber.StatusNotFound, "unknown collection")
	}

	record, err := col.get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return storeError(c, fiber.StatusNotFound, "record not found")
		}
		slog.Error("failed to fetch record", "collection", c.Params("collection"), "error", err)
		return storeError(c, fiber.StatusInternalServerError, "failed to fetch record")
	}
	return c.JSON(record)
}

// Create stores the posted record and returns it with its assigned id.
func (h *Handler) Create(c fiber.Ctx) error {
	col, ok := h.lookup(c)
	if !ok {
		return storeError(c, fiber.StatusNotFound, "unknown collection")
	}

	record, err := col.create(c.Context(), c.Body())
	if err != nil {
		switch {
		case isBadRecord(err):
			return storeError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, db.ErrDuplicateToken):
			return storeError(c, fiber.StatusConflict, err.Error())
		}
		slog.Error("failed to create record", "collection", c.Params("collection"), "error", err)
		return storeError(c, fiber.StatusInternalServerError, "failed to create record")
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// Delete removes a record by id.
func (h *Handler) Delete(c fiber.Ctx) error {
	col, ok := h.lookup(c)
	if !ok {
		return storeError(c, fiber.StatusNotFound, "unknown collection")
	}

	if err := col.remove(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return storeError(c, fiber.StatusNotFound, "record not found")
		}
		slog.Error("failed to delete record", "collection", c.Params("collection"), "error", err)
		return storeError(c, fiber.StatusInternalServerError, "failed to delete record")
	}
	return c.JSON(fiber.Map{})
}
