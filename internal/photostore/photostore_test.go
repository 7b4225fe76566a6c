package photostore

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCheckUpload(t *testing.T) {
	const max = 1 << 20

	tests := []struct {
		name        string
		contentType string
		size        int64
		wantExt     string
		wantErr     error
	}{
		{"jpeg", "image/jpeg", 1024, ".jpg", nil},
		{"png with params", "image/png; charset=binary", 1024, ".png", nil},
		{"upper case", "IMAGE/WEBP", 10, ".webp", nil},
		{"exactly max", "image/gif", max, ".gif", nil},
		{"too large", "image/jpeg", max + 1, "", ErrTooLarge},
		{"empty", "image/jpeg", 0, "", ErrTooLarge},
		{"pdf", "application/pdf", 1024, "", ErrNotImage},
		{"svg", "image/svg+xml", 1024, "", ErrNotImage},
		{"missing type", "", 1024, "", ErrNotImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := CheckUpload(tt.contentType, tt.size, max)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CheckUpload() error = %v, want %v", err, tt.wantErr)
			}
			if ext != tt.wantExt {
				t.Errorf("CheckUpload() ext = %q, want %q", ext, tt.wantExt)
			}
		})
	}
}

func TestObjectKey(t *testing.T) {
	a := ObjectKey("album-1", ".jpg")
	b := ObjectKey("album-1", ".jpg")
	if a == b {
		t.Errorf("ObjectKey() repeated %q", a)
	}
	if !strings.HasPrefix(a, "albums/album-1/") || !strings.HasSuffix(a, ".jpg") {
		t.Errorf("ObjectKey() = %q, want albums/album-1/<uuid>.jpg", a)
	}
}

func TestObjectBaseURL(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"plain endpoint", Options{Endpoint: "minio:9000", Bucket: "photos"}, "http://minio:9000/photos/"},
		{"ssl endpoint", Options{Endpoint: "s3.example.com", Bucket: "photos", UseSSL: true}, "https://s3.example.com/photos/"},
		{"public url", Options{Endpoint: "minio:9000", Bucket: "photos", PublicURL: "https://cdn.example.com/"}, "https://cdn.example.com/photos/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := objectBaseURL(tt.opts); got != tt.want {
				t.Errorf("objectBaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveIgnoresForeignURLs(t *testing.T) {
	s := &MinioStore{baseURL: "http://minio:9000/photos/"}
	for _, url := range []string{"https://example.com/a.jpg", "http://minio:9000/photos/", ""} {
		if err := s.Remove(context.Background(), url); err != nil {
			t.Errorf("Remove(%q) error = %v, want nil", url, err)
		}
	}
}
