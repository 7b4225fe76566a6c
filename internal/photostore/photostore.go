// Package photostore keeps uploaded photo files in a MinIO bucket. Photos
// in the record store only ever hold the resulting URL.
package photostore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	ErrNotImage = errors.New("only image files can be uploaded")
	ErrTooLarge = errors.New("file is too large")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Options locate the bucket.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the externally reachable base for objects. Defaults to
	// the endpoint itself.
	PublicURL string
}

// MinioStore wraps a MinIO client for photo storage.
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioStore connects to MinIO and ensures the bucket exists.
func NewMinioStore(ctx context.Context, opts Options) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return &MinioStore{
		client:  client,
		bucket:  opts.Bucket,
		baseURL: objectBaseURL(opts),
	}, nil
}

func objectBaseURL(opts Options) string {
	base := opts.PublicURL
	if base == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + opts.Endpoint
	}
	return strings.TrimRight(base, "/") + "/" + opts.Bucket + "/"
}

// CheckUpload rejects non-image content types and files over maxBytes.
// It returns the file extension used for the object key.
func CheckUpload(contentType string, size, maxBytes int64) (string, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := allowedTypes[mediaType]
	if !ok {
		return "", ErrNotImage
	}
	if size <= 0 || size > maxBytes {
		return "", ErrTooLarge
	}
	return ext, nil
}

// ObjectKey names the object for a new photo in albumID.
func ObjectKey(albumID, ext string) string {
	return path.Join("albums", albumID, uuid.NewString()+ext)
}

// Upload stores the file and returns its public URL.
func (s *MinioStore) Upload(ctx context.Context, albumID string, r io.Reader, size int64, contentType string, maxBytes int64) (string, error) {
	ext, err := CheckUpload(contentType, size, maxBytes)
	if err != nil {
		return "", err
	}

	key := ObjectKey(albumID, ext)
	_, err = s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio put %s: %w", key, err)
	}
	return s.baseURL + key, nil
}

// Remove deletes the object behind url. URLs outside the bucket are left
// alone.
func (s *MinioStore) Remove(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL)
	if !ok || key == "" {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
