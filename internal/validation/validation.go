package validation

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"framevault/internal/models"
)

// Password length bounds accepted at signup. The minimum counts characters;
// the maximum counts bytes because bcrypt only hashes the first 72.
const (
	MinPasswordLength = 4
	MaxPasswordLength = 72
)

// TokenPattern is the URL-safe alphabet share tokens are drawn from.
var TokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Error is a client-side form validation failure. It carries the offending
// field and a message that is safe to show to the user.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func fail(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// ValidateToken checks that a share token is non-empty, bounded and URL-safe.
func ValidateToken(token string) bool {
	if token == "" || len(token) > 128 {
		return false
	}
	return TokenPattern.MatchString(token)
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// ValidateEmail checks that the address is a bare, syntactically valid email.
func ValidateEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}

// NormalizeEmail trims and lowercases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateSignup runs the signup form checks. Confirmation mismatch is
// reported before password length.
func ValidateSignup(name, email, password, confirm string) error {
	if strings.TrimSpace(name) == "" {
		return fail("name", "Name is required")
	}
	if strings.TrimSpace(email) == "" {
		return fail("email", "Email is required")
	}
	if !ValidateEmail(email) {
		return fail("email", "Please enter a valid email address")
	}
	if password != confirm {
		return fail("confirmPassword", "Passwords do not match")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fail("password", "Password must be at least 4 characters long")
	}
	if len(password) > MaxPasswordLength {
		return fail("password", "Password must be 72 bytes or fewer")
	}
	return nil
}

// ValidateAlbum checks the create-album form and returns the parsed event date.
func ValidateAlbum(title, eventDate string) (models.Date, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Date{}, fail("title", "Album title is required")
	}
	if len(title) > 200 {
		return models.Date{}, fail("title", "Album title must be 200 characters or fewer")
	}
	if eventDate == "" {
		return models.Date{}, fail("eventDate", "Event date is required")
	}
	if _, err := time.Parse(models.DateLayout, eventDate); err != nil {
		return models.Date{}, fail("eventDate", "Event date must be in YYYY-MM-DD format")
	}
	return models.MustParseDate(eventDate), nil
}

// ValidateCaption bounds the optional photo caption.
func ValidateCaption(caption string) error {
	if len(caption) > 500 {
		return fail("caption", "Caption must be 500 characters or fewer")
	}
	return nil
}
