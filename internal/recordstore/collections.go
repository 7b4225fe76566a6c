package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"framevault/internal/db"
	"framevault/internal/models"
	"framevault/internal/validation"
)

// errBadRecord marks a create payload the store refuses.
type errBadRecord struct{ msg string }

func (e errBadRecord) Error() string { return e.msg }

func badRecord(msg string) error { return errBadRecord{msg: msg} }

// collection binds one REST collection to its backend operations.
type collection struct {
	filters map[string]bool
	list    func(ctx context.Context, query map[string]string) (any, error)
	get     func(ctx context.Context, id string) (any, error)
	create  func(ctx context.Context, body []byte) (any, error)
	remove  func(ctx context.Context, id string) error
}

func collections(b Backend, now func() time.Time) map[string]collection {
	return map[string]collection{
		"users": {
			filters: map[string]bool{"email": true},
			list: func(ctx context.Context, q map[string]string) (any, error) {
				return b.ListUsers(ctx, q["email"])
			},
			get: func(ctx context.Context, id string) (any, error) {
				return b.GetUser(ctx, id)
			},
			create: func(ctx context.Context, body []byte) (any, error) {
				var u models.User
				if err := json.Unmarshal(body, &u); err != nil {
					return nil, badRecord("invalid request body")
				}
				u.ID = ""
				u.Email = strings.TrimSpace(u.Email)
				if strings.TrimSpace(u.Name) == "" || u.Email == "" {
					return nil, badRecord("name and email are required")
				}
				if err := b.CreateUser(ctx, &u); err != nil {
					return nil, err
				}
				return u, nil
			},
			remove: b.DeleteUser,
		},
		"albums": {
			filters: map[string]bool{"userId": true},
			list: func(ctx context.Context, q map[string]string) (any, error) {
				return b.ListAlbums(ctx, q["userId"])
			},
			get: func(ctx context.Context, id string) (any, error) {
				return b.GetAlbum(ctx, id)
			},
			create: func(ctx context.Context, body []byte) (any, error) {
				var a models.Album
				if err := json.Unmarshal(body, &a); err != nil {
					return nil, badRecord("invalid request body")
				}
				a.ID = ""
				if a.UserID == "" || strings.TrimSpace(a.Title) == "" || a.EventDate.IsZero() {
					return nil, badRecord("userId, title and eventDate are required")
				}
				if a.CreatedAt.IsZero() {
					a.CreatedAt = models.DateOf(now())
				}
				if err := b.CreateAlbum(ctx, &a); err != nil {
					return nil, err
				}
				return a, nil
			},
			remove: b.DeleteAlbum,
		},
		"photos": {
			filters: map[string]bool{"albumId": true},
			list: func(ctx context.Context, q map[string]string) (any, error) {
				return b.ListPhotos(ctx, q["albumId"])
			},
			get: func(ctx context.Context, id string) (any, error) {
				return b.GetPhoto(ctx, id)
			},
			create: func(ctx context.Context, body []byte) (any, error) {
				var p models.Photo
				if err := json.Unmarshal(body, &p); err != nil {
					return nil, badRecord("invalid request body")
				}
				p.ID = ""
				if p.AlbumID == "" || p.URL == "" {
					return nil, badRecord("albumId and url are required")
				}
				if p.UploadedAt.IsZero() {
					p.UploadedAt = models.DateOf(now())
				}
				if err := b.CreatePhoto(ctx, &p); err != nil {
					return nil, err
				}
				return p, nil
			},
			remove: b.DeletePhoto,
		},
		"shares": {
			filters: map[string]bool{"token": true, "albumId": true},
			list: func(ctx context.Context, q map[string]string) (any, error) {
				return b.ListShares(ctx, db.ShareFilter{Token: q["token"], AlbumID: q["albumId"]})
			},
			get: func(ctx context.Context, id string) (any, error) {
				return b.GetShare(ctx, id)
			},
			create: func(ctx context.Context, body []byte) (any, error) {
				var s models.Share
				if err := json.Unmarshal(body, &s); err != nil {
					return nil, badRecord("invalid request body")
				}
				s.ID = ""
				if s.AlbumID == "" || s.ExpiresAt.IsZero() {
					return nil, badRecord("albumId and expiresAt are required")
				}
				if !validation.ValidateToken(s.Token) {
					return nil, badRecord("token must be 1-128 URL-safe characters")
				}
				if s.CreatedAt.IsZero() {
					s.CreatedAt = models.DateOf(now())
				}
				if s.ExpiresAt.Before(s.CreatedAt) {
					return nil, badRecord("expiresAt must not precede createdAt")
				}
				if err := b.CreateShare(ctx, &s); err != nil {
					return nil, err
				}
				return s, nil
			},
			remove: b.DeleteShare,
		},
	}
}

func isBadRecord(err error) bool {
	var bad errBadRecord
	return errors.As(err, &bad) || errors.Is(err, db.ErrInvalidReference)
}
