package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"framevault/internal/models"
)

const userColumns = `id, name, email, password, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u  models.User
		id uuid.UUID
	)
	if err := row.Scan(&id, &u.Name, &u.Email, &u.Password, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.ID = id.String()
	return &u, nil
}

// CreateUser inserts a user and fills in the generated id. A zero CreatedAt
// is set by the database.
func (d *DB) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password, created_at)
		VALUES ($1, $2, $3, COALESCE($4, NOW()))
		RETURNING id, created_at
	`
	var createdAt any
	if !user.CreatedAt.IsZero() {
		createdAt = user.CreatedAt
	}

	var id uuid.UUID
	if err := d.Pool.QueryRow(ctx, query, user.Name, user.Email, user.Password, createdAt).Scan(&id, &user.CreatedAt); err != nil {
		return err
	}
	user.ID = id.String()
	return nil
}

// GetUser retrieves a user by id.
func (d *DB) GetUser(ctx context.Context, id string) (*models.User, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, ErrRecordNotFound
	}

	user, err := scanUser(d.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns users in insertion order, filtered by email when given.
func (d *DB) ListUsers(ctx context.Context, email string) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if email != "" {
		query += ` WHERE lower(email) = lower($1)`
		args = append(args, email)
	}
	query += ` ORDER BY inserted_at`

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// DeleteUser removes a user by id.
func (d *DB) DeleteUser(ctx context.Context, id string) error {
	return d.deleteByID(ctx, "users", id)
}

// deleteByID removes one row from a record table. table is always a
// package constant, never user input.
func (d *DB) deleteByID(ctx context.Context, table, id string) error {
	uid, ok := parseID(id)
	if !ok {
		return ErrRecordNotFound
	}
	result, err := d.Pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, uid)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}
