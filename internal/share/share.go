// Package share issues share links for albums and resolves them back to the
// album and its photos, enforcing expiry at resolution time.
package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"framevault/internal/metrics"
	"framevault/internal/models"
	"framevault/internal/storeclient"
	"framevault/internal/validation"
)

const (
	// DefaultValidityDays is how long a link resolves after issue.
	DefaultValidityDays = 365

	issueAttempts = 3
)

// Store is the subset of the record store client the lifecycle needs.
type Store interface {
	CreateShare(ctx context.Context, share *models.Share) (*models.Share, error)
	FindShareByToken(ctx context.Context, token string) (*models.Share, bool, error)
	ListSharesByAlbum(ctx context.Context, albumID string) ([]models.Share, error)
	GetAlbum(ctx context.Context, id string) (*models.Album, bool, error)
	ListPhotosByAlbum(ctx context.Context, albumID string) ([]models.Photo, error)
}

// Issued is a freshly persisted share and the URL that resolves it.
type Issued struct {
	URL   string
	Share models.Share
}

// Resolution is what a valid token unlocks.
type Resolution struct {
	Share  models.Share
	Album  models.Album
	Photos []models.Photo
}

// Service runs the share lifecycle against a record store.
type Service struct {
	store        Store
	baseURL      string
	validityDays int
	newToken     func() (string, error)
}

// Option configures a Service.
type Option func(*Service)

// WithValidityDays overrides the link lifetime. Non-positive values are ignored.
func WithValidityDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.validityDays = days
		}
	}
}

// WithTokenGenerator replaces the random token source.
func WithTokenGenerator(fn func() (string, error)) Option {
	return func(s *Service) {
		s.newToken = fn
	}
}

// NewService creates a share lifecycle whose links start with baseURL.
func NewService(store Store, baseURL string, opts ...Option) *Service {
	s := &Service{
		store:        store,
		baseURL:      baseURL,
		validityDays: DefaultValidityDays,
		newToken:     GenerateToken,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URLFor returns the public link for token.
func (s *Service) URLFor(token string) string {
	return s.baseURL + "/s/" + token
}

// Issue creates a share for albumID valid from today through today plus the
// validity window. Each call creates a new, independent share. A token
// collision reported by the store is retried with a fresh token.
func (s *Service) Issue(ctx context.Context, albumID string, now time.Time) (*Issued, error) {
	today := models.DateOf(now)

	var lastErr error
	for attempt := 1; attempt <= issueAttempts; attempt++ {
		token, err := s.newToken()
		if err != nil {
			metrics.ShareIssues.WithLabelValues(metrics.OutcomeError).Inc()
			return nil, fmt.Errorf("%w: %w", ErrIssueFailed, err)
		}

		stored, err := s.store.CreateShare(ctx, &models.Share{
			AlbumID:   albumID,
			Token:     token,
			CreatedAt: today,
			ExpiresAt: today.AddDays(s.validityDays),
		})
		if err == nil {
			metrics.ShareIssues.WithLabelValues(metrics.OutcomeOK).Inc()
			return &Issued{URL: s.URLFor(stored.Token), Share: *stored}, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.ShareIssues.WithLabelValues(metrics.OutcomeCanceled).Inc()
			return nil, ctxErr
		}
		lastErr = err
		if !errors.Is(err, storeclient.ErrConflict) {
			break
		}
		slog.Warn("share token collision, retrying", "album_id", albumID, "attempt", attempt)
	}

	metrics.ShareIssues.WithLabelValues(metrics.OutcomeError).Inc()
	return nil, fmt.Errorf("%w: %w", ErrIssueFailed, lastErr)
}

// Resolve maps token to its album and photos. It returns ErrNotFound for
// unknown tokens and deleted albums, ErrExpired once today is past the
// share's expiry date, and ErrLoadFailed when the store cannot be reached.
// A share still resolves on its expiry date.
func (s *Service) Resolve(ctx context.Context, token string, now time.Time) (*Resolution, error) {
	res, err := s.resolve(ctx, token, now)
	metrics.ShareResolutions.WithLabelValues(resolveOutcome(err)).Inc()
	return res, err
}

func (s *Service) resolve(ctx context.Context, token string, now time.Time) (*Resolution, error) {
	if !validation.ValidateToken(token) {
		return nil, ErrNotFound
	}

	sh, found, err := s.store.FindShareByToken(ctx, token)
	if err != nil {
		return nil, loadFailed(ctx, err)
	}
	if !found {
		return nil, ErrNotFound
	}
	if sh.ExpiredOn(models.DateOf(now)) {
		return nil, ErrExpired
	}

	album, found, err := s.store.GetAlbum(ctx, sh.AlbumID)
	if err != nil {
		return nil, loadFailed(ctx, err)
	}
	if !found {
		return nil, ErrNotFound
	}

	photos, err := s.store.ListPhotosByAlbum(ctx, sh.AlbumID)
	if err != nil {
		return nil, loadFailed(ctx, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Resolution{Share: *sh, Album: *album, Photos: photos}, nil
}

// ListForAlbum returns the album's shares in issue order, each with its
// public URL and whether it has expired as of now.
func (s *Service) ListForAlbum(ctx context.Context, albumID string, now time.Time) ([]models.ShareWithStatus, error) {
	shares, err := s.store.ListSharesByAlbum(ctx, albumID)
	if err != nil {
		return nil, loadFailed(ctx, err)
	}

	today := models.DateOf(now)
	out := make([]models.ShareWithStatus, 0, len(shares))
	for _, sh := range shares {
		out = append(out, models.ShareWithStatus{
			Share:   sh,
			URL:     s.URLFor(sh.Token),
			Expired: sh.ExpiredOn(today),
		})
	}
	return out, nil
}

func loadFailed(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %w", ErrLoadFailed, err)
}

func resolveOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrExpired):
		return metrics.OutcomeExpired
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeError
	}
}
