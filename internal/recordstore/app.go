package recordstore

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// Options tunes the record store app.
type Options struct {
	// AccessLog enables the request logger middleware.
	AccessLog bool
}

// New builds a Fiber app serving backend over the REST contract.
func New(backend Backend, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "framevault-store",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			}
			return storeError(c, code, message)
		},
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}

	NewHandler(backend).Register(app)
	return app
}
