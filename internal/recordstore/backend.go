package recordstore

import (
	"context"

	"framevault/internal/db"
	"framevault/internal/models"
)

// Backend persists the four collections served by the record store.
type Backend interface {
	Ping(ctx context.Context) error

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
	ListShares(ctx context.Context, filter db.ShareFilter) ([]models.Share, error)
	DeleteShare(ctx context.Context, id string) error
}

var (
	_ Backend = (*db.DB)(nil)
	_ Backend = (*db.Memory)(nil)
)
