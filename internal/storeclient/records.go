package storeclient

import (
	"context"

	"framevault/internal/models"
)

// GetAlbum fetches an album by id.
func (c *Client) GetAlbum(ctx context.Context, id string) (*models.Album, bool, error) {
	var album models.Album
	found, err := c.FetchOne(ctx, Albums, id, &album)
	if !found || err != nil {
		return nil, false, err
	}
	return &album, true, nil
}

// ListAlbumsByUser returns the albums owned by userID.
func (c *Client) ListAlbumsByUser(ctx context.Context, userID string) ([]models.Album, error) {
	albums := []models.Album{}
	if err := c.FetchMany(ctx, Albums, map[string]string{"userId": userID}, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// CreateAlbum stores an album and returns it with its id.
func (c *Client) CreateAlbum(ctx context.Context, album *models.Album) (*models.Album, error) {
	var stored models.Album
	if err := c.Create(ctx, Albums, album, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeleteAlbum removes an album. Its photos and shares stay in the store.
func (c *Client) DeleteAlbum(ctx context.Context, id string) error {
	return c.Delete(ctx, Albums, id)
}

// GetPhoto fetches a photo by id.
func (c *Client) GetPhoto(ctx context.Context, id string) (*models.Photo, bool, error) {
	var photo models.Photo
	found, err := c.FetchOne(ctx, Photos, id, &photo)
	if !found || err != nil {
		return nil, false, err
	}
	return &photo, true, nil
}

// ListPhotosByAlbum returns the photos whose albumId matches.
func (c *Client) ListPhotosByAlbum(ctx context.Context, albumID string) ([]models.Photo, error) {
	photos := []models.Photo{}
	if err := c.FetchMany(ctx, Photos, map[string]string{"albumId": albumID}, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// CreatePhoto stores a photo and returns it with its id.
func (c *Client) CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	var stored models.Photo
	if err := c.Create(ctx, Photos, photo, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeletePhoto removes a photo.
func (c *Client) DeletePhoto(ctx context.Context, id string) error {
	return c.Delete(ctx, Photos, id)
}

// FindShareByToken returns the first share carrying token.
func (c *Client) FindShareByToken(ctx context.Context, token string) (*models.Share, bool, error) {
	shares := []models.Share{}
	if err := c.FetchMany(ctx, Shares, map[string]string{"token": token}, &shares); err != nil {
		return nil, false, err
	}
	if len(shares) == 0 {
		return nil, false, nil
	}
	return &shares[0], true, nil
}

// ListSharesByAlbum returns every share issued for albumID.
func (c *Client) ListSharesByAlbum(ctx context.Context, albumID string) ([]models.Share, error) {
	shares := []models.Share{}
	if err := c.FetchMany(ctx, Shares, map[string]string{"albumId": albumID}, &shares); err != nil {
		return nil, err
	}
	return shares, nil
}

// CreateShare stores a share. A taken token yields ErrConflict.
func (c *Client) CreateShare(ctx context.Context, share *models.Share) (*models.Share, error) {
	var stored models.Share
	if err := c.Create(ctx, Shares, share, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeleteShare removes a share.
func (c *Client) DeleteShare(ctx context.Context, id string) error {
	return c.Delete(ctx, Shares, id)
}

// FindUsersByEmail returns the users registered under email.
func (c *Client) FindUsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	users := []models.User{}
	if err := c.FetchMany(ctx, Users, map[string]string{"email": email}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser stores a user and returns it with its id.
func (c *Client) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	var stored models.User
	if err := c.Create(ctx, Users, user, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}
