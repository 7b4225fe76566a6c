package handlers

import (
	"github.com/gofiber/fiber/v3"

	"framevault/internal/config"
	"framevault/internal/middleware"
)

// BrandingData contains site branding information for templates.
type BrandingData struct {
	SiteTitle   string
	SiteTagline string
	OIDCEnabled bool
}

// GetBrandingData returns branding data from config for template rendering.
func GetBrandingData(cfg *config.Config) BrandingData {
	return BrandingData{
		SiteTitle:   cfg.SiteTitle,
		SiteTagline: cfg.SiteTagline,
		OIDCEnabled: cfg.OIDCEnabled(),
	}
}

// MergeBranding adds branding data to a fiber.Map for template rendering.
func MergeBranding(data fiber.Map, cfg *config.Config) fiber.Map {
	branding := GetBrandingData(cfg)
	data["SiteTitle"] = branding.SiteTitle
	data["SiteTagline"] = branding.SiteTagline
	data["OIDCEnabled"] = branding.OIDCEnabled
	return data
}

// page merges branding and the current user, if any, into data.
func page(c fiber.Ctx, cfg *config.Config, data fiber.Map) fiber.Map {
	if user, ok := middleware.CurrentUser(c); ok {
		data["User"] = user
	}
	return MergeBranding(data, cfg)
}
