package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"framevault/internal/models"
)

const albumColumns = `id, user_id, title, event_date, created_at`

func scanAlbum(row pgx.Row) (*models.Album, error) {
	var (
		a                    models.Album
		id, userID           uuid.UUID
		eventDate, createdAt time.Time
	)
	if err := row.Scan(&id, &userID, &a.Title, &eventDate, &createdAt); err != nil {
		return nil, err
	}
	a.ID = id.String()
	a.UserID = userID.String()
	a.EventDate = models.DateOf(eventDate)
	a.CreatedAt = models.DateOf(createdAt)
	return &a, nil
}

// CreateAlbum inserts an album. A zero CreatedAt defaults to today.
func (d *DB) CreateAlbum(ctx context.Context, album *models.Album) error {
	userID, ok := parseID(album.UserID)
	if !ok {
		return ErrInvalidReference
	}
	if album.CreatedAt.IsZero() {
		album.CreatedAt = models.DateOf(time.Now())
	}

	query := `
		INSERT INTO albums (user_id, title, event_date, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id uuid.UUID
	if err := d.Pool.QueryRow(ctx, query, userID, album.Title, album.EventDate.Time(), album.CreatedAt.Time()).Scan(&id); err != nil {
		return err
	}
	album.ID = id.String()
	return nil
}

// GetAlbum retrieves an album by id.
func (d *DB) GetAlbum(ctx context.Context, id string) (*models.Album, error) {
	aid, ok := parseID(id)
	if !ok {
		return nil, ErrRecordNotFound
	}

	album, err := scanAlbum(d.Pool.QueryRow(ctx, `SELECT `+albumColumns+` FROM albums WHERE id = $1`, aid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return album, nil
}

// ListAlbums returns albums in insertion order, filtered by owner when given.
func (d *DB) ListAlbums(ctx context.Context, userID string) ([]models.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums`
	var args []any
	if userID != "" {
		uid, ok := parseID(userID)
		if !ok {
			return []models.Album{}, nil
		}
		query += ` WHERE user_id = $1`
		args = append(args, uid)
	}
	query += ` ORDER BY inserted_at`

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	albums := []models.Album{}
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, *a)
	}
	return albums, rows.Err()
}

// DeleteAlbum removes an album. Photos and shares referencing it are left
// untouched.
func (d *DB) DeleteAlbum(ctx context.Context, id string) error {
	return d.deleteByID(ctx, "albums", id)
}
