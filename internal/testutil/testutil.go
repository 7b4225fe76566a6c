// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v3"

	"framevault/internal/db"
	"framevault/internal/models"
	"framevault/internal/recordstore"
)

// TestDB creates a test database connection and returns a cleanup function.
// Skips the test unless TEST_DATABASE_URL is set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	cleanupTestData(ctx, database)

	cleanup := func() {
		cleanupTestData(ctx, database)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all records from the database.
func cleanupTestData(ctx context.Context, database *db.DB) {
	for _, table := range []string{"shares", "photos", "albums", "users"} {
		database.Pool.Exec(ctx, "DELETE FROM "+table)
	}
}

// StoreServer is a record store listening on a loopback port for the
// duration of a test.
type StoreServer struct {
	URL     string
	Backend recordstore.Backend

	requests atomic.Int64

	mu      sync.RWMutex
	failing []string
}

// StartStore serves an in-memory record store on 127.0.0.1.
func StartStore(t *testing.T) *StoreServer {
	t.Helper()
	return StartStoreWith(t, db.NewMemory())
}

// StartStoreWith serves backend on 127.0.0.1 until the test ends.
func StartStoreWith(t *testing.T, backend recordstore.Backend) *StoreServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	s := &StoreServer{
		URL:     "http://" + ln.Addr().String(),
		Backend: backend,
	}

	app := fiber.New()
	app.Use(func(c fiber.Ctx) error {
		s.requests.Add(1)
		if s.shouldFail(c.Path()) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "injected failure"})
		}
		return c.Next()
	})
	recordstore.NewHandler(backend).Register(app)

	go func() {
		_ = app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	return s
}

// Requests returns how many requests the store has received.
func (s *StoreServer) Requests() int64 {
	return s.requests.Load()
}

// FailOn makes every request whose path starts with prefix answer 500.
func (s *StoreServer) FailOn(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = append(s.failing, prefix)
}

// Heal clears all injected failures.
func (s *StoreServer) Heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = nil
}

func (s *StoreServer) shouldFail(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, prefix := range s.failing {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// CreateTestUser stores a user directly in the backend.
func CreateTestUser(t *testing.T, backend recordstore.Backend, name, email, passwordHash string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: passwordHash}
	if err := backend.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAlbum stores an album owned by userID.
func CreateTestAlbum(t *testing.T, backend recordstore.Backend, userID, title string) *models.Album {
	t.Helper()
	album := &models.Album{UserID: userID, Title: title, EventDate: models.MustParseDate("2024-06-01")}
	if err := backend.CreateAlbum(context.Background(), album); err != nil {
		t.Fatalf("failed to create test album: %v", err)
	}
	return album
}

// CreateTestPhoto stores a photo in albumID.
func CreateTestPhoto(t *testing.T, backend recordstore.Backend, albumID, url string) *models.Photo {
	t.Helper()
	photo := &models.Photo{AlbumID: albumID, URL: url}
	if err := backend.CreatePhoto(context.Background(), photo); err != nil {
		t.Fatalf("failed to create test photo: %v", err)
	}
	return photo
}
