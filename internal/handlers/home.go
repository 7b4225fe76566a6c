package handlers

import (
	"github.com/gofiber/fiber/v3"

	"framevault/internal/config"
)

// HomeHandler serves the landing page.
type HomeHandler struct {
	cfg *config.Config
}

// NewHomeHandler creates a new home handler.
func NewHomeHandler(cfg *config.Config) *HomeHandler {
	return &HomeHandler{cfg: cfg}
}

// Index renders the landing page.
func (h *HomeHandler) Index(c fiber.Ctx) error {
	return c.Render("home", page(c, h.cfg, fiber.Map{"Title": "Home"}))
}
