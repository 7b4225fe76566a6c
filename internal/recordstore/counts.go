package recordstore

import (
	"context"

	"framevault/internal/db"
	"framevault/internal/metrics"
)

// Counts returns a metrics.CountFunc reporting the size of each collection.
func Counts(b Backend) metrics.CountFunc {
	return func(ctx context.Context) (map[string]int, error) {
		users, err := b.ListUsers(ctx, "")
		if err != nil {
			return nil, err
		}
		albums, err := b.ListAlbums(ctx, "")
		if err != nil {
			return nil, err
		}
		photos, err := b.ListPhotos(ctx, "")
		if err != nil {
			return nil, err
		}
		shares, err := b.ListShares(ctx, db.ShareFilter{})
		if err != nil {
			return nil, err
		}
		return map[string]int{
			"users":  len(users),
			"albums": len(albums),
			"photos": len(photos),
			"shares": len(shares),
		}, nil
	}
}
