package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"framevault/internal/account"
	"framevault/internal/session"
)

func TestGenerateState(t *testing.T) {
	a, err := generateState()
	if err != nil {
		t.Fatalf("generateState() error = %v", err)
	}
	b, _ := generateState()
	if a == "" || a == b {
		t.Errorf("generateState() = %q then %q, want distinct non-empty values", a, b)
	}
}

func TestOIDCLoginEntropyFailure(t *testing.T) {
	prev := randRead
	randRead = func([]byte) (int, error) { return 0, errors.New("entropy unavailable") }
	t.Cleanup(func() { randRead = prev })

	if _, err := generateState(); err == nil {
		t.Fatal("generateState() error = nil, want the read failure")
	}

	f := newFixture(t)
	h := NewAuthHandler(account.NewService(f.client), session.NewHolder(time.Hour), testConfig())
	app := newTestApp(nil, func(app *fiber.App) {
		app.Use(session.NewMiddleware(session.Config{IdleTimeout: time.Hour}))
		app.Get("/auth/oidc/login", h.OIDCLogin)
	})

	req, _ := http.NewRequest("GET", "/auth/oidc/login", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("GET /auth/oidc/login failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "" {
		t.Errorf("Location = %q, want no redirect to the provider", loc)
	}
}
