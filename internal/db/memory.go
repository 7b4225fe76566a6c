package db

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"framevault/internal/models"
)

// Memory keeps records in-process. It mirrors the PostgreSQL backend's
// behaviour (uuid ids, insertion order, unique share tokens) and is used for
// development and tests.
type Memory struct {
	mu     sync.RWMutex
	users  table[models.User]
	albums table[models.Album]
	photos table[models.Photo]
	shares table[models.Share]
	tokens map[string]string // token -> share id
	now    func() time.Time
}

// table holds one collection in insertion order.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

func (t *table[T]) insert(id string, row T) {
	t.rows[id] = row
	t.order = append(t.order, id)
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) filter(match func(T) bool) []T {
	res := make([]T, 0, len(t.order))
	for _, id := range t.order {
		if row, ok := t.rows[id]; ok && match(row) {
			res = append(res, row)
		}
	}
	return res
}

// NewMemory initializes an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		users:  newTable[models.User](),
		albums: newTable[models.Album](),
		photos: newTable[models.Photo](),
		shares: newTable[models.Share](),
		tokens: make(map[string]string),
		now:    time.Now,
	}
}

// Ping always succeeds.
func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

// CreateUser stores a user and assigns its id.
func (m *Memory) CreateUser(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = uuid.NewString()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = m.now().UTC()
	}
	m.users.insert(user.ID, *user)
	return nil
}

// GetUser returns a user by id.
func (m *Memory) GetUser(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users.get(id)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &u, nil
}

// ListUsers returns users in insertion order, matching email case-insensitively.
func (m *Memory) ListUsers(ctx context.Context, email string) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users.filter(func(u models.User) bool {
		return email == "" || strings.EqualFold(u.Email, email)
	}), nil
}

// DeleteUser removes a user by id.
func (m *Memory) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.users.remove(id) {
		return ErrRecordNotFound
	}
	return nil
}

// CreateAlbum stores an album and assigns its id.
func (m *Memory) CreateAlbum(ctx context.Context, album *models.Album) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := parseID(album.UserID); !ok {
		return ErrInvalidReference
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	album.ID = uuid.NewString()
	if album.CreatedAt.IsZero() {
		album.CreatedAt = models.DateOf(m.now())
	}
	m.albums.insert(album.ID, *album)
	return nil
}

// GetAlbum returns an album by id.
func (m *Memory) GetAlbum(ctx context.Context, id string) (*models.Album, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.albums.get(id)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &a, nil
}

// ListAlbums returns albums in insertion order, filtered by owner when given.
func (m *Memory) ListAlbums(ctx context.Context, userID string) ([]models.Album, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.albums.filter(func(a models.Album) bool {
		return userID == "" || a.UserID == userID
	}), nil
}

// DeleteAlbum removes an album. Photos and shares are left untouched.
func (m *Memory) DeleteAlbum(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.albums.remove(id) {
		return ErrRecordNotFound
	}
	return nil
}

// CreatePhoto stores a photo and assigns its id.
func (m *Memory) CreatePhoto(ctx context.Context, photo *models.Photo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := parseID(photo.AlbumID); !ok {
		return ErrInvalidReference
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	photo.ID = uuid.NewString()
	if photo.UploadedAt.IsZero() {
		photo.UploadedAt = models.DateOf(m.now())
	}
	m.photos.insert(photo.ID, *photo)
	return nil
}

// GetPhoto returns a photo by id.
func (m *Memory) GetPhoto(ctx context.Context, id string) (*models.Photo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.photos.get(id)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &p, nil
}

// ListPhotos returns photos in upload order, filtered by album when given.
func (m *Memory) ListPhotos(ctx context.Context, albumID string) ([]models.Photo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.photos.filter(func(p models.Photo) bool {
		return albumID == "" || p.AlbumID == albumID
	}), nil
}

// DeletePhoto removes a photo by id.
func (m *Memory) DeletePhoto(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.photos.remove(id) {
		return ErrRecordNotFound
	}
	return nil
}

// CreateShare stores a share. Returns ErrDuplicateToken when the token is
// already taken.
func (m *Memory) CreateShare(ctx context.Context, share *models.Share) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := parseID(share.AlbumID); !ok {
		return ErrInvalidReference
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.tokens[share.Token]; taken {
		return ErrDuplicateToken
	}
	share.ID = uuid.NewString()
	m.shares.insert(share.ID, *share)
	m.tokens[share.Token] = share.ID
	return nil
}

// GetShare returns a share by id.
func (m *Memory) GetShare(ctx context.Context, id string) (*models.Share, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.shares.get(id)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &s, nil
}

// ListShares returns shares in issue order matching the filter.
func (m *Memory) ListShares(ctx context.Context, filter ShareFilter) ([]models.Share, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.shares.filter(func(s models.Share) bool {
		if filter.Token != "" && s.Token != filter.Token {
			return false
		}
		return filter.AlbumID == "" || s.AlbumID == filter.AlbumID
	}), nil
}

// DeleteShare removes a share by id.
func (m *Memory) DeleteShare(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shares.get(id)
	if !ok {
		return ErrRecordNotFound
	}
	m.shares.remove(id)
	delete(m.tokens, s.Token)
	return nil
}
