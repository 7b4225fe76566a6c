package handlers

import (
	"html"

	"github.com/gofiber/fiber/v3"
)

// isHTMX reports whether the request came from an htmx swap.
func isHTMX(c fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

// htmxError returns an error message as HTML that HTMX will display.
// Uses 200 status so HTMX processes the swap (HTMX ignores non-2xx by default).
func htmxError(c fiber.Ctx, message string) error {
	return c.SendString(
		`<div class="alert alert-error">` + html.EscapeString(message) + `</div>`,
	)
}

// notFound is the error for missing pages and albums the user does not own.
func notFound() error {
	return fiber.NewError(fiber.StatusNotFound, "Page not found")
}
