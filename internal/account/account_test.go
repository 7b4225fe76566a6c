package account_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"framevault/internal/account"
	"framevault/internal/storeclient"
	"framevault/internal/testutil"
	"framevault/internal/validation"
)

func setup(t *testing.T) (*testutil.StoreServer, *account.Service) {
	t.Helper()
	srv := testutil.StartStore(t)
	return srv, account.NewService(storeclient.New(srv.URL, 2*time.Second))
}

func TestSignupValidationMakesNoRemoteCalls(t *testing.T) {
	srv, svc := setup(t)

	tests := []struct {
		name      string
		form      account.SignupForm
		wantField string
	}{
		{"short password", account.SignupForm{"Ann", "ann@example.com", "abc", "abc"}, "password"},
		{"short multibyte password", account.SignupForm{"Ann", "ann@example.com", "日本", "日本"}, "password"},
		{"mismatched confirmation", account.SignupForm{"Ann", "ann@example.com", "abcd", "abce"}, "confirmPassword"},
		{"missing name", account.SignupForm{"", "ann@example.com", "abcd", "abcd"}, "name"},
		{"bad email", account.SignupForm{"Ann", "not-an-email", "abcd", "abcd"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := srv.Requests()
			_, err := svc.Signup(context.Background(), tt.form)

			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("Signup() error = %v, want *validation.Error", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Signup() field = %q, want %q", verr.Field, tt.wantField)
			}
			if got := srv.Requests() - before; got != 0 {
				t.Errorf("Signup() made %d remote calls, want 0", got)
			}
		})
	}
}

func TestSignupAndLogin(t *testing.T) {
	srv, svc := setup(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, account.SignupForm{Name: " Ann ", Email: "Ann@Example.com", Password: "secret", Confirm: "secret"})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if user.ID == "" || user.Name != "Ann" || user.Email != "ann@example.com" {
		t.Errorf("Signup() = %+v, want trimmed name and normalized email", user)
	}
	if user.Password != "" {
		t.Error("Signup() returned a password hash")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Signup() did not set createdAt")
	}

	stored, _ := srv.Backend.ListUsers(ctx, "ann@example.com")
	if len(stored) != 1 || stored[0].Password == "secret" || !account.CheckPassword(stored[0].Password, "secret") {
		t.Fatal("Signup() did not store a bcrypt hash")
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"correct", "ann@example.com", "secret", nil},
		{"email case ignored", "ANN@example.com", "secret", nil},
		{"wrong password", "ann@example.com", "secreT", account.ErrInvalidCredentials},
		{"unknown email", "bob@example.com", "secret", account.ErrInvalidCredentials},
		{"empty password", "ann@example.com", "", account.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && (got.ID != user.ID || got.Password != "") {
				t.Errorf("Login() = %+v, want user %s without password", got, user.ID)
			}
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()

	form := account.SignupForm{Name: "Ann", Email: "ann@example.com", Password: "secret", Confirm: "secret"}
	if _, err := svc.Signup(ctx, form); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	form.Email = "ANN@example.com"
	if _, err := svc.Signup(ctx, form); !errors.Is(err, account.ErrEmailTaken) {
		t.Errorf("Signup(duplicate) error = %v, want %v", err, account.ErrEmailTaken)
	}
}

func TestSignupStoreFailure(t *testing.T) {
	srv, svc := setup(t)
	srv.FailOn("/users")

	_, err := svc.Signup(context.Background(), account.SignupForm{Name: "Ann", Email: "ann@example.com", Password: "secret", Confirm: "secret"})
	if !errors.Is(err, storeclient.ErrRequestFailed) {
		t.Errorf("Signup() error = %v, want %v", err, storeclient.ErrRequestFailed)
	}
}

func TestLoginExternal(t *testing.T) {
	srv, svc := setup(t)
	ctx := context.Background()

	first, err := svc.LoginExternal(ctx, "Sso@Example.com", "Sso User")
	if err != nil {
		t.Fatalf("LoginExternal() error = %v", err)
	}
	second, err := svc.LoginExternal(ctx, "sso@example.com", "Renamed")
	if err != nil {
		t.Fatalf("LoginExternal() error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("LoginExternal() created a second user %s, want %s", second.ID, first.ID)
	}

	users, _ := srv.Backend.ListUsers(ctx, "sso@example.com")
	if len(users) != 1 {
		t.Errorf("ListUsers() = %d, want 1", len(users))
	}

	if _, err := svc.Login(ctx, "sso@example.com", ""); !errors.Is(err, account.ErrInvalidCredentials) {
		t.Errorf("Login() of passwordless user error = %v, want %v", err, account.ErrInvalidCredentials)
	}
	if _, err := svc.LoginExternal(ctx, "not an email", "x"); err == nil {
		t.Error("LoginExternal(invalid email) error = nil")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := account.HashPassword("demo")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	tests := []struct {
		hash, password string
		want           bool
	}{
		{hash, "demo", true},
		{hash, "Demo", false},
		{"", "demo", false},
		{"demo", "demo", false},
	}
	for _, tt := range tests {
		if got := account.CheckPassword(tt.hash, tt.password); got != tt.want {
			t.Errorf("CheckPassword(%q, %q) = %v, want %v", tt.hash, tt.password, got, tt.want)
		}
	}
}
