package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"framevault/internal/models"
)

// backend is the method set both DB and Memory provide.
type backend interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, email string) ([]models.User, error)
	DeleteUser(ctx context.Context, id string) error
	CreateAlbum(ctx context.Context, album *models.Album) error
	GetAlbum(ctx context.Context, id string) (*models.Album, error)
	ListAlbums(ctx context.Context, userID string) ([]models.Album, error)
	DeleteAlbum(ctx context.Context, id string) error
	CreatePhoto(ctx context.Context, photo *models.Photo) error
	GetPhoto(ctx context.Context, id string) (*models.Photo, error)
	ListPhotos(ctx context.Context, albumID string) ([]models.Photo, error)
	DeletePhoto(ctx context.Context, id string) error
	CreateShare(ctx context.Context, share *models.Share) error
	GetShare(ctx context.Context, id string) (*models.Share, error)
	ListShares(ctx context.Context, filter ShareFilter) ([]models.Share, error)
	DeleteShare(ctx context.Context, id string) error
}

var (
	_ backend = (*DB)(nil)
	_ backend = (*Memory)(nil)
)

// forEachBackend runs fn against the in-memory backend and, when a test
// database is configured, against PostgreSQL.
func forEachBackend(t *testing.T, fn func(t *testing.T, b backend)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemory())
	})
	t.Run("postgres", func(t *testing.T) {
		database, cleanup := setupTestDB(t)
		defer cleanup()
		fn(t, database)
	})
}

func mustCreateUser(t *testing.T, b backend, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Test User", Email: email, Password: "hash"}
	if err := b.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return u
}

func mustCreateAlbum(t *testing.T, b backend, userID, title string) *models.Album {
	t.Helper()
	a := &models.Album{UserID: userID, Title: title, EventDate: models.MustParseDate("2024-06-01")}
	if err := b.CreateAlbum(context.Background(), a); err != nil {
		t.Fatalf("CreateAlbum() error = %v", err)
	}
	return a
}

func TestUsers(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()

		u := mustCreateUser(t, b, "Alice@Example.com")
		if u.ID == "" {
			t.Fatal("CreateUser() did not set ID")
		}
		if u.CreatedAt.IsZero() {
			t.Error("CreateUser() did not set CreatedAt")
		}
		mustCreateUser(t, b, "bob@example.com")

		fetched, err := b.GetUser(ctx, u.ID)
		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		if fetched.Email != "Alice@Example.com" {
			t.Errorf("GetUser() email = %q, want %q", fetched.Email, "Alice@Example.com")
		}

		matches, err := b.ListUsers(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("ListUsers() error = %v", err)
		}
		if len(matches) != 1 || matches[0].ID != u.ID {
			t.Errorf("ListUsers(email) = %v, want only %s", matches, u.ID)
		}

		none, err := b.ListUsers(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("ListUsers() error = %v", err)
		}
		if none == nil || len(none) != 0 {
			t.Errorf("ListUsers(no match) = %#v, want empty non-nil slice", none)
		}

		all, _ := b.ListUsers(ctx, "")
		if len(all) != 2 {
			t.Errorf("ListUsers(\"\") returned %d users, want 2", len(all))
		}

		if err := b.DeleteUser(ctx, u.ID); err != nil {
			t.Fatalf("DeleteUser() error = %v", err)
		}
		if _, err := b.GetUser(ctx, u.ID); !errors.Is(err, ErrRecordNotFound) {
			t.Errorf("GetUser() after delete error = %v, want %v", err, ErrRecordNotFound)
		}
		if err := b.DeleteUser(ctx, u.ID); !errors.Is(err, ErrRecordNotFound) {
			t.Errorf("DeleteUser() twice error = %v, want %v", err, ErrRecordNotFound)
		}
	})
}

func TestAlbums(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()
		owner := mustCreateUser(t, b, "owner@example.com")
		other := mustCreateUser(t, b, "other@example.com")

		first := mustCreateAlbum(t, b, owner.ID, "Summer")
		second := mustCreateAlbum(t, b, owner.ID, "Winter")
		mustCreateAlbum(t, b, other.ID, "Not mine")

		if first.CreatedAt.IsZero() {
			t.Error("CreateAlbum() did not default CreatedAt")
		}

		got, err := b.GetAlbum(ctx, first.ID)
		if err != nil {
			t.Fatalf("GetAlbum() error = %v", err)
		}
		if got.Title != "Summer" || !got.EventDate.Equal(models.MustParseDate("2024-06-01")) {
			t.Errorf("GetAlbum() = %+v, want title Summer on 2024-06-01", got)
		}

		owned, err := b.ListAlbums(ctx, owner.ID)
		if err != nil {
			t.Fatalf("ListAlbums() error = %v", err)
		}
		if len(owned) != 2 || owned[0].ID != first.ID || owned[1].ID != second.ID {
			t.Errorf("ListAlbums(owner) = %v, want [%s %s] in insertion order", owned, first.ID, second.ID)
		}

		bogus, err := b.ListAlbums(ctx, "not-a-uuid")
		if err != nil {
			t.Fatalf("ListAlbums(bogus) error = %v", err)
		}
		if len(bogus) != 0 {
			t.Errorf("ListAlbums(bogus) = %v, want empty", bogus)
		}

		if err := b.CreateAlbum(ctx, &models.Album{UserID: "nope", Title: "x"}); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("CreateAlbum(bad user) error = %v, want %v", err, ErrInvalidReference)
		}
	})
}

func TestDeleteAlbumDoesNotCascade(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()
		owner := mustCreateUser(t, b, "owner@example.com")
		album := mustCreateAlbum(t, b, owner.ID, "Trip")

		photo := &models.Photo{AlbumID: album.ID, URL: "https://example.com/a.jpg"}
		if err := b.CreatePhoto(ctx, photo); err != nil {
			t.Fatalf("CreatePhoto() error = %v", err)
		}
		today := models.DateOf(time.Now())
		share := &models.Share{AlbumID: album.ID, Token: "tok-cascade", CreatedAt: today, ExpiresAt: today.AddDays(365)}
		if err := b.CreateShare(ctx, share); err != nil {
			t.Fatalf("CreateShare() error = %v", err)
		}

		if err := b.DeleteAlbum(ctx, album.ID); err != nil {
			t.Fatalf("DeleteAlbum() error = %v", err)
		}

		photos, _ := b.ListPhotos(ctx, album.ID)
		if len(photos) != 1 {
			t.Errorf("ListPhotos() after album delete = %d photos, want 1", len(photos))
		}
		shares, _ := b.ListShares(ctx, ShareFilter{Token: "tok-cascade"})
		if len(shares) != 1 {
			t.Errorf("ListShares() after album delete = %d shares, want 1", len(shares))
		}
	})
}

func TestPhotos(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()
		owner := mustCreateUser(t, b, "owner@example.com")
		a1 := mustCreateAlbum(t, b, owner.ID, "One")
		a2 := mustCreateAlbum(t, b, owner.ID, "Two")

		for _, p := range []*models.Photo{
			{AlbumID: a1.ID, URL: "https://example.com/1.jpg", Caption: "first"},
			{AlbumID: a2.ID, URL: "https://example.com/2.jpg"},
			{AlbumID: a1.ID, URL: "https://example.com/3.jpg"},
		} {
			if err := b.CreatePhoto(ctx, p); err != nil {
				t.Fatalf("CreatePhoto() error = %v", err)
			}
			if p.UploadedAt.IsZero() {
				t.Error("CreatePhoto() did not default UploadedAt")
			}
		}

		photos, err := b.ListPhotos(ctx, a1.ID)
		if err != nil {
			t.Fatalf("ListPhotos() error = %v", err)
		}
		if len(photos) != 2 {
			t.Fatalf("ListPhotos(a1) = %d photos, want 2", len(photos))
		}
		if photos[0].Caption != "first" || photos[1].URL != "https://example.com/3.jpg" {
			t.Errorf("ListPhotos(a1) = %+v, want upload order", photos)
		}

		if err := b.DeletePhoto(ctx, photos[0].ID); err != nil {
			t.Fatalf("DeletePhoto() error = %v", err)
		}
		if _, err := b.GetPhoto(ctx, photos[0].ID); !errors.Is(err, ErrRecordNotFound) {
			t.Errorf("GetPhoto() after delete error = %v, want %v", err, ErrRecordNotFound)
		}
	})
}

func TestShares(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()
		owner := mustCreateUser(t, b, "owner@example.com")
		album := mustCreateAlbum(t, b, owner.ID, "Shared")
		created := models.MustParseDate("2024-01-10")

		share := &models.Share{AlbumID: album.ID, Token: "abc_DEF-123", CreatedAt: created, ExpiresAt: created.AddDays(365)}
		if err := b.CreateShare(ctx, share); err != nil {
			t.Fatalf("CreateShare() error = %v", err)
		}
		if share.ID == "" {
			t.Fatal("CreateShare() did not set ID")
		}

		dup := &models.Share{AlbumID: album.ID, Token: "abc_DEF-123", CreatedAt: created, ExpiresAt: created.AddDays(365)}
		if err := b.CreateShare(ctx, dup); !errors.Is(err, ErrDuplicateToken) {
			t.Errorf("CreateShare(duplicate) error = %v, want %v", err, ErrDuplicateToken)
		}

		second := &models.Share{AlbumID: album.ID, Token: "second", CreatedAt: created, ExpiresAt: created.AddDays(365)}
		if err := b.CreateShare(ctx, second); err != nil {
			t.Fatalf("CreateShare(second) error = %v", err)
		}

		tests := []struct {
			name   string
			filter ShareFilter
			want   int
		}{
			{"by token", ShareFilter{Token: "abc_DEF-123"}, 1},
			{"token is case sensitive", ShareFilter{Token: "ABC_def-123"}, 0},
			{"by album", ShareFilter{AlbumID: album.ID}, 2},
			{"token and album", ShareFilter{Token: "second", AlbumID: album.ID}, 1},
			{"unknown album", ShareFilter{AlbumID: "not-a-uuid"}, 0},
			{"all", ShareFilter{}, 2},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := b.ListShares(ctx, tt.filter)
				if err != nil {
					t.Fatalf("ListShares() error = %v", err)
				}
				if len(got) != tt.want {
					t.Errorf("ListShares(%+v) = %d shares, want %d", tt.filter, len(got), tt.want)
				}
			})
		}

		got, err := b.GetShare(ctx, share.ID)
		if err != nil {
			t.Fatalf("GetShare() error = %v", err)
		}
		if !got.ExpiresAt.Equal(models.MustParseDate("2025-01-09")) {
			t.Errorf("GetShare() expiresAt = %s, want 2025-01-09", got.ExpiresAt)
		}

		if err := b.DeleteShare(ctx, share.ID); err != nil {
			t.Fatalf("DeleteShare() error = %v", err)
		}
		reuse := &models.Share{AlbumID: album.ID, Token: "abc_DEF-123", CreatedAt: created, ExpiresAt: created.AddDays(365)}
		if err := b.CreateShare(ctx, reuse); err != nil {
			t.Errorf("CreateShare() after delete error = %v, want nil", err)
		}
	})
}
