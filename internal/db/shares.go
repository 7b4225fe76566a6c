package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"framevault/internal/models"
)

const shareColumns = `id, album_id, token, created_at, expires_at`

// ShareFilter selects shares by token and/or album. Empty fields match all.
type ShareFilter struct {
	Token   string
	AlbumID string
}

func scanShare(row pgx.Row) (*models.Share, error) {
	var (
		s                    models.Share
		id, albumID          uuid.UUID
		createdAt, expiresAt time.Time
	)
	if err := row.Scan(&id, &albumID, &s.Token, &createdAt, &expiresAt); err != nil {
		return nil, err
	}
	s.ID = id.String()
	s.AlbumID = albumID.String()
	s.CreatedAt = models.DateOf(createdAt)
	s.ExpiresAt = models.DateOf(expiresAt)
	return &s, nil
}

// CreateShare inserts a share record. Returns ErrDuplicateToken when the
// token is already taken.
func (d *DB) CreateShare(ctx context.Context, share *models.Share) error {
	albumID, ok := parseID(share.AlbumID)
	if !ok {
		return ErrInvalidReference
	}

	query := `
		INSERT INTO shares (album_id, token, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id uuid.UUID
	err := d.Pool.QueryRow(ctx, query, albumID, share.Token, share.CreatedAt.Time(), share.ExpiresAt.Time()).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateToken
		}
		return err
	}
	share.ID = id.String()
	return nil
}

// GetShare retrieves a share by id.
func (d *DB) GetShare(ctx context.Context, id string) (*models.Share, error) {
	sid, ok := parseID(id)
	if !ok {
		return nil, ErrRecordNotFound
	}

	share, err := scanShare(d.Pool.QueryRow(ctx, `SELECT `+shareColumns+` FROM shares WHERE id = $1`, sid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return share, nil
}

// ListShares returns shares in issue order matching the filter.
func (d *DB) ListShares(ctx context.Context, filter ShareFilter) ([]models.Share, error) {
	query := `SELECT ` + shareColumns + ` FROM shares WHERE TRUE`
	var args []any
	if filter.Token != "" {
		args = append(args, filter.Token)
		query += ` AND token = $1`
	}
	if filter.AlbumID != "" {
		aid, ok := parseID(filter.AlbumID)
		if !ok {
			return []models.Share{}, nil
		}
		args = append(args, aid)
		if len(args) == 1 {
			query += ` AND album_id = $1`
		} else {
			query += ` AND album_id = $2`
		}
	}
	query += ` ORDER BY inserted_at`

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shares := []models.Share{}
	for rows.Next() {
		s, err := scanShare(rows)
		if err != nil {
			return nil, err
		}
		shares = append(shares, *s)
	}
	return shares, rows.Err()
}

// DeleteShare removes a share by id.
func (d *DB) DeleteShare(ctx context.Context, id string) error {
	return d.deleteByID(ctx, "shares", id)
}
