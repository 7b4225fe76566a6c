package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"framevault/internal/models"
)

const photoColumns = `id, album_id, url, caption, uploaded_at`

func scanPhoto(row pgx.Row) (*models.Photo, error) {
	var (
		p           models.Photo
		id, albumID uuid.UUID
		uploadedAt  time.Time
	)
	if err := row.Scan(&id, &albumID, &p.URL, &p.Caption, &uploadedAt); err != nil {
		return nil, err
	}
	p.ID = id.String()
	p.AlbumID = albumID.String()
	p.UploadedAt = models.DateOf(uploadedAt)
	return &p, nil
}

// CreatePhoto inserts a photo. A zero UploadedAt defaults to today.
func (d *DB) CreatePhoto(ctx context.Context, photo *models.Photo) error {
	albumID, ok := parseID(photo.AlbumID)
	if !ok {
		return ErrInvalidReference
	}
	if photo.UploadedAt.IsZero() {
		photo.UploadedAt = models.DateOf(time.Now())
	}

	query := `
		INSERT INTO photos (album_id, url, caption, uploaded_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id uuid.UUID
	if err := d.Pool.QueryRow(ctx, query, albumID, photo.URL, photo.Caption, photo.UploadedAt.Time()).Scan(&id); err != nil {
		return err
	}
	photo.ID = id.String()
	return nil
}

// GetPhoto retrieves a photo by id.
func (d *DB) GetPhoto(ctx context.Context, id string) (*models.Photo, error) {
	pid, ok := parseID(id)
	if !ok {
		return nil, ErrRecordNotFound
	}

	photo, err := scanPhoto(d.Pool.QueryRow(ctx, `SELECT `+photoColumns+` FROM photos WHERE id = $1`, pid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return photo, nil
}

// ListPhotos returns photos in upload order, filtered by album when given.
func (d *DB) ListPhotos(ctx context.Context, albumID string) ([]models.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos`
	var args []any
	if albumID != "" {
		aid, ok := parseID(albumID)
		if !ok {
			return []models.Photo{}, nil
		}
		query += ` WHERE album_id = $1`
		args = append(args, aid)
	}
	query += ` ORDER BY inserted_at`

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *p)
	}
	return photos, rows.Err()
}

// DeletePhoto removes a photo by id.
func (d *DB) DeletePhoto(ctx context.Context, id string) error {
	return d.deleteByID(ctx, "photos", id)
}
