// Package session keeps the current user of a browser in server-side session
// storage bound to an encrypted cookie.
package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	fibersession "github.com/gofiber/fiber/v3/middleware/session"

	"framevault/internal/models"
)

const userKey = "user"

// ErrNoSession is returned when the session middleware did not run.
var ErrNoSession = errors.New("session middleware not installed")

// User is the record persisted for a logged-in browser. It never holds the
// password.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Holder reads and writes the current user record.
type Holder struct {
	ttl time.Duration
	now func() time.Time
}

// NewHolder creates a holder whose records live for ttl, sliding forward on
// use once less than half of ttl remains.
func NewHolder(ttl time.Duration) *Holder {
	return &Holder{ttl: ttl, now: time.Now}
}

// TTL returns the record lifetime.
func (h *Holder) TTL() time.Duration {
	return h.ttl
}

// Save stores user as the current user under a fresh session id.
func (h *Holder) Save(c fiber.Ctx, user *models.User) error {
	sess := fibersession.FromContext(c)
	if sess == nil {
		return ErrNoSession
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}

	now := h.now().UTC()
	return h.write(sess, &User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(h.ttl),
	})
}

// Load returns the current user. ok is false when there is none or the
// record is unreadable or expired; Load never fails.
func (h *Holder) Load(c fiber.Ctx) (*User, bool) {
	sess := fibersession.FromContext(c)
	if sess == nil {
		return nil, false
	}

	raw, _ := sess.Get(userKey).(string)
	if raw == "" {
		return nil, false
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
		slog.Warn("dropping unreadable session record", "error", err)
		sess.Delete(userKey)
		return nil, false
	}

	now := h.now().UTC()
	if !now.Before(u.ExpiresAt) {
		sess.Delete(userKey)
		return nil, false
	}

	if u.ExpiresAt.Sub(now) < h.ttl/2 {
		u.ExpiresAt = now.Add(h.ttl)
		if err := h.write(sess, &u); err != nil {
			slog.Warn("failed to refresh session", "error", err)
		}
	}
	return &u, true
}

// Clear removes the current user and destroys the session.
func (h *Holder) Clear(c fiber.Ctx) error {
	sess := fibersession.FromContext(c)
	if sess == nil {
		return nil
	}
	sess.Delete(userKey)
	return sess.Destroy()
}

func (h *Holder) write(sess *fibersession.Middleware, u *User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	sess.Set(userKey, string(data))
	return nil
}
