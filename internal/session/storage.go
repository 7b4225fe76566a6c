package session

import (
	"time"

	"github.com/gofiber/fiber/v3"
	fibersession "github.com/gofiber/fiber/v3/middleware/session"
	"github.com/gofiber/storage/redis/v3"
)

// NewStorage returns Redis-backed storage for redisURL, or nil to keep
// sessions in process memory when redisURL is empty.
func NewStorage(redisURL string) fiber.Storage {
	if redisURL == "" {
		return nil
	}
	return redis.New(redis.Config{
		URL:   redisURL,
		Reset: false,
	})
}

// Config describes the session cookie and backing store.
type Config struct {
	Storage     fiber.Storage
	IdleTimeout time.Duration
	Secure      bool
}

// NewMiddleware builds the Fiber session middleware for cfg.
func NewMiddleware(cfg Config) fiber.Handler {
	handler, _ := fibersession.NewWithStore(fibersession.Config{
		Storage:        cfg.Storage,
		IdleTimeout:    cfg.IdleTimeout,
		CookieSecure:   cfg.Secure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	return handler
}
