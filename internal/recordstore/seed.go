package recordstore

import (
	"context"
	"fmt"
	"log/slog"

	"framevault/internal/account"
	"framevault/internal/config"
	"framevault/internal/models"
)

// Seed inserts the seed file's users with their albums and photos. Users
// whose email already exists are skipped with everything nested under them,
// so seeding is safe on every start. Returns the number of users created.
func Seed(ctx context.Context, backend Backend, seed *config.Seed) (int, error) {
	if seed == nil {
		return 0, nil
	}

	created := 0
	for _, su := range seed.Users {
		existing, err := backend.ListUsers(ctx, su.Email)
		if err != nil {
			return created, fmt.Errorf("lookup %s: %w", su.Email, err)
		}
		if len(existing) > 0 {
			continue
		}

		hash, err := account.HashPassword(su.Password)
		if err != nil {
			return created, fmt.Errorf("hash password for %s: %w", su.Email, err)
		}
		user := &models.User{Name: su.Name, Email: su.Email, Password: hash}
		if err := backend.CreateUser(ctx, user); err != nil {
			return created, fmt.Errorf("create user %s: %w", su.Email, err)
		}
		created++

		for _, sa := range su.Albums {
			eventDate, err := models.ParseDate(sa.EventDate)
			if err != nil {
				return created, fmt.Errorf("album %q: %w", sa.Title, err)
			}
			album := &models.Album{UserID: user.ID, Title: sa.Title, EventDate: eventDate}
			if err := backend.CreateAlbum(ctx, album); err != nil {
				return created, fmt.Errorf("create album %q: %w", sa.Title, err)
			}
			for _, sp := range sa.Photos {
				photo := &models.Photo{AlbumID: album.ID, URL: sp.URL, Caption: sp.Caption}
				if err := backend.CreatePhoto(ctx, photo); err != nil {
					return created, fmt.Errorf("create photo %s: %w", sp.URL, err)
				}
			}
		}
		slog.Info("seeded user", "email", su.Email, "albums", len(su.Albums))
	}
	return created, nil
}
