// Package account signs users up and logs them in against the record store.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"framevault/internal/models"
	"framevault/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Store is the subset of the record store client accounts need.
type Store interface {
	FindUsersByEmail(ctx context.Context, email string) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
}

// SignupForm is the data submitted on the signup page.
type SignupForm struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// Service implements signup and login.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates an account service.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Signup validates the form locally, rejects emails already registered and
// stores the new user with a hashed password. The returned user carries no
// password.
func (s *Service) Signup(ctx context.Context, form SignupForm) (*models.User, error) {
	if err := validation.ValidateSignup(form.Name, form.Email, form.Password, form.Confirm); err != nil {
		return nil, err
	}
	email := validation.NormalizeEmail(form.Email)

	existing, err := s.store.FindUsersByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.store.CreateUser(ctx, &models.User{
		Name:      strings.TrimSpace(form.Name),
		Email:     email,
		Password:  hash,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := created.WithoutPassword()
	return &user, nil
}

// Login checks email and password. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	users, err := s.store.FindUsersByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	for _, u := range users {
		if CheckPassword(u.Password, password) {
			user := u.WithoutPassword()
			return &user, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// LoginExternal finds or creates the user behind an identity verified by an
// external provider. Such users have no local password.
func (s *Service) LoginExternal(ctx context.Context, email, name string) (*models.User, error) {
	email = validation.NormalizeEmail(email)
	if !validation.ValidateEmail(email) {
		return nil, fmt.Errorf("provider returned invalid email %q", email)
	}

	users, err := s.store.FindUsersByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if len(users) > 0 {
		user := users[0].WithoutPassword()
		return &user, nil
	}

	if strings.TrimSpace(name) == "" {
		name = email
	}
	created, err := s.store.CreateUser(ctx, &models.User{
		Name:      strings.TrimSpace(name),
		Email:     email,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	user := created.WithoutPassword()
	return &user, nil
}
