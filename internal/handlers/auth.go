package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"golang.org/x/oauth2"

	"framevault/internal/account"
	"framevault/internal/config"
	fvsession "framevault/internal/session"
	"framevault/internal/validation"
)

// AuthHandler handles signup, password login, logout and the optional
// OpenID Connect flow.
type AuthHandler struct {
	accounts *account.Service
	holder   *fvsession.Holder
	cfg      *config.Config

	provider     *oidc.Provider
	oauth2Config oauth2.Config
	verifier     *oidc.IDTokenVerifier
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(accounts *account.Service, holder *fvsession.Holder, cfg *config.Config) *AuthHandler {
	return &AuthHandler{accounts: accounts, holder: holder, cfg: cfg}
}

// EnableOIDC discovers the configured provider so OIDCLogin and OIDCCallback
// can be served.
func (h *AuthHandler) EnableOIDC(ctx context.Context) error {
	provider, err := oidc.NewProvider(ctx, h.cfg.OIDCIssuer)
	if err != nil {
		return err
	}

	h.provider = provider
	h.oauth2Config = oauth2.Config{
		ClientID:     h.cfg.OIDCClientID,
		ClientSecret: h.cfg.OIDCClientSecret,
		RedirectURL:  h.cfg.OIDCRedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
	h.verifier = provider.Verifier(&oidc.Config{ClientID: h.cfg.OIDCClientID})
	return nil
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c fiber.Ctx) error {
	if _, ok := h.holder.Load(c); ok {
		return c.Redirect().To("/dashboard")
	}
	return c.Render("login", MergeBranding(fiber.Map{"Title": "Log in"}, h.cfg))
}

// Login checks the submitted credentials and starts a session.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.accounts.Login(c.Context(), email, password)
	if err != nil {
		message := "Login failed. Please try again."
		if errors.Is(err, account.ErrInvalidCredentials) {
			message = "Invalid email or password"
		} else {
			slog.Error("login failed", "error", err)
		}
		return c.Render("login", MergeBranding(fiber.Map{
			"Title": "Log in",
			"Error": message,
			"Email": email,
		}, h.cfg))
	}

	if err := h.holder.Save(c, user); err != nil {
		return err
	}
	return c.Redirect().To("/dashboard")
}

// ShowSignup renders the signup form.
func (h *AuthHandler) ShowSignup(c fiber.Ctx) error {
	if _, ok := h.holder.Load(c); ok {
		return c.Redirect().To("/dashboard")
	}
	return c.Render("signup", MergeBranding(fiber.Map{"Title": "Sign up"}, h.cfg))
}

// Signup creates an account and logs the new user in.
func (h *AuthHandler) Signup(c fiber.Ctx) error {
	form := account.SignupForm{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Confirm:  c.FormValue("confirmPassword"),
	}

	user, err := h.accounts.Signup(c.Context(), form)
	if err != nil {
		var verr *validation.Error
		message := "Signup failed. Please try again."
		switch {
		case errors.As(err, &verr):
			message = verr.Message
		case errors.Is(err, account.ErrEmailTaken):
			message = "User with this email already exists"
		default:
			slog.Error("signup failed", "error", err)
		}
		return c.Render("signup", MergeBranding(fiber.Map{
			"Title": "Sign up",
			"Error": message,
			"Name":  form.Name,
			"Email": form.Email,
		}, h.cfg))
	}

	if err := h.holder.Save(c, user); err != nil {
		return err
	}
	return c.Redirect().To("/dashboard")
}

// Logout clears the user session.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if err := h.holder.Clear(c); err != nil {
		slog.Warn("failed to destroy session", "error", err)
	}
	return c.Redirect().To("/")
}

// OIDCLogin initiates the OIDC login flow.
func (h *AuthHandler) OIDCLogin(c fiber.Ctx) error {
	state, err := generateState()
	if err != nil {
		slog.Error("failed to generate oauth state", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Login failed. Please try again.")
	}

	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}
	sess.Set("oauth_state", state)

	url := h.oauth2Config.AuthCodeURL(state)
	return c.Redirect().To(url)
}

// OIDCCallback handles the provider redirect after authentication.
func (h *AuthHandler) OIDCCallback(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}

	// Verify state
	savedState, _ := sess.Get("oauth_state").(string)
	if savedState == "" || savedState != c.Query("state") {
		return fiber.NewError(fiber.StatusBadRequest, "invalid state")
	}
	sess.Delete("oauth_state")

	oauth2Token, err := h.oauth2Config.Exchange(c.Context(), c.Query("code"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to exchange code")
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "missing id_token")
	}

	idToken, err := h.verifier.Verify(c.Context(), rawIDToken)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id_token")
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return err
	}

	// Some providers only include minimal claims in the ID token
	if claims.Email == "" {
		userInfo, err := h.provider.UserInfo(c.Context(), oauth2.StaticTokenSource(oauth2Token))
		if err != nil {
			slog.Warn("failed to fetch userinfo", "error", err)
		} else {
			claims.Email = userInfo.Email
		}
	}
	if claims.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "provider did not return an email")
	}

	user, err := h.accounts.LoginExternal(c.Context(), claims.Email, claims.Name)
	if err != nil {
		slog.Error("external login failed", "error", err)
		return fiber.NewError(fiber.StatusBadGateway, "Login failed. Please try again.")
	}

	if err := h.holder.Save(c, user); err != nil {
		return err
	}
	return c.Redirect().To("/dashboard")
}

// randRead is the entropy source for OAuth state.
var randRead = rand.Read

func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := randRead(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
