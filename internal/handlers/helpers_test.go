package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/template/html/v3"

	"framevault/internal/config"
	"framevault/internal/session"
	"framevault/internal/share"
	"framevault/internal/storeclient"
	"framevault/internal/testutil"
	"framevault/views"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:            "development",
		BaseURL:        "http://framevault.test",
		UploadMaxBytes: 1 << 20,
		SiteTitle:      "FrameVault",
	}
}

// newTestApp serves routes with the views engine and, when user is set,
// that user placed on every request the way the auth middleware does.
func newTestApp(user *session.User, routes func(app *fiber.App)) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:       html.NewFileSystem(http.FS(views.FS), ".html"),
		ViewsLayout: "layouts/main",
	})
	app.Use(func(c fiber.Ctx) error {
		if user != nil {
			c.Locals("user", user)
		}
		return c.Next()
	})
	routes(app)
	return app
}

type fixture struct {
	store  *testutil.StoreServer
	client *storeclient.Client
	shares *share.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.StartStore(t)
	client := storeclient.New(store.URL, 2*time.Second)
	return &fixture{
		store:  store,
		client: client,
		shares: share.NewService(client, "http://framevault.test"),
	}
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("%s %s failed: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func formRequest(method, path string, form url.Values) *http.Request {
	req, _ := http.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, path, field, filename, contentType string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(data)
	w.Close()

	req, _ := http.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// fakeUploader records uploads and removals instead of talking to MinIO.
type fakeUploader struct {
	mu      sync.Mutex
	uploads []string
	removed []string
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, albumID string, r io.Reader, size int64, contentType string, maxBytes int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	url := "http://objects.test/albums/" + albumID + "/photo.jpg"
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeUploader) Remove(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, url)
	return nil
}
