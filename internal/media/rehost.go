// Package media rehosts note attachments: it downloads bytes from the
// time-limited signed URL and uploads them to durable object storage.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/starford/laguz/internal/models"
)

const (
	downloadTimeout = 30 * time.Second
	defaultExt      = ".png"
)

// objectStore is the slice of the object-storage client the rehoster uses.
type objectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Rehoster copies attachment bytes into a bucket under a date-partitioned
// key prefix and returns stable public URLs.
type Rehoster struct {
	store    objectStore
	endpoint string
	bucket   string
	prefix   string
	http     *http.Client
	logger   *slog.Logger
	now      func() time.Time
}

// NewRehoster creates a Rehoster backed by a MinIO-compatible endpoint.
func NewRehoster(endpoint, bucket, prefix, accessKey, secretKey string, logger *slog.Logger) (*Rehoster, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: true,
	})
	if err != nil {
		return nil, fmt.Errorf("media: init object storage client: %w", err)
	}
	return &Rehoster{
		store:    client,
		endpoint: endpoint,
		bucket:   bucket,
		prefix:   prefix,
		http:     &http.Client{Timeout: downloadTimeout},
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Rehost downloads the attachment and uploads it under
// {prefix}{YYYY-MM-DD}/{epoch}_{suffix}{ext}, returning the public URL.
func (r *Rehoster) Rehost(ctx context.Context, att models.Attachment) (string, error) {
	data, contentType, err := r.download(ctx, att.URL)
	if err != nil {
		return "", err
	}

	key := r.objectKey(att.URL)
	r.logger.Debug("uploading attachment",
		slog.String("name", att.Name),
		slog.String("key", key),
		slog.Int("bytes", len(data)))

	_, err = r.store.PutObject(ctx, r.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("media: upload %s: %w", att.Name, err)
	}

	return fmt.Sprintf("https://%s.%s/%s", r.bucket, r.endpoint, key), nil
}

// download fetches the attachment bytes from its signed URL.
func (r *Rehoster) download(ctx context.Context, signedURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, signedURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("media: build download request: %w", err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("media: download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("media: download: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("media: read download: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// objectKey builds a collision-resistant date-partitioned key, keeping
// the source extension when one is present.
func (r *Rehoster) objectKey(sourceURL string) string {
	name := fmt.Sprintf("%d_%s%s", r.now().Unix(), randomSuffix(), extensionOf(sourceURL))
	return r.prefix + r.now().Format("2006-01-02") + "/" + name
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

// extensionOf returns the extension of the URL path, or the default when
// none is present.
func extensionOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return defaultExt
	}
	if ext := path.Ext(u.Path); ext != "" {
		return ext
	}
	return defaultExt
}
