package middleware

import (
	"github.com/gofiber/fiber/v3"

	"framevault/internal/session"
)

const userLocal = "user"

// AuthMiddleware gates pages on the session's current user.
type AuthMiddleware struct {
	holder *session.Holder
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(holder *session.Holder) *AuthMiddleware {
	return &AuthMiddleware{holder: holder}
}

// RequireAuth ensures the user is authenticated, redirecting to /login if
// not. Nothing downstream runs for anonymous requests.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	user, ok := m.holder.Load(c)
	if !ok {
		return c.Redirect().To("/login")
	}

	c.Locals(userLocal, user)
	return c.Next()
}

// RequireAuthAPI is RequireAuth for JSON endpoints: it answers 401 instead
// of redirecting.
func (m *AuthMiddleware) RequireAuthAPI(c fiber.Ctx) error {
	user, ok := m.holder.Load(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "unauthorized",
		})
	}

	c.Locals(userLocal, user)
	return c.Next()
}

// OptionalAuth loads the user if authenticated, but doesn't require authentication.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	if user, ok := m.holder.Load(c); ok {
		c.Locals(userLocal, user)
	}
	return c.Next()
}

// CurrentUser returns the user placed on the request by the auth middleware.
func CurrentUser(c fiber.Ctx) (*session.User, bool) {
	user, ok := c.Locals(userLocal).(*session.User)
	return user, ok && user != nil
}
