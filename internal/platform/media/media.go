// Package media stores uploaded user images on local disk and serves them
// by URL. The Uploader interface keeps handlers independent of where the
// bytes actually land.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// maxUploadBytes caps a single avatar upload.
const MaxUploadBytes = 5 << 20 // 5 MiB

// Uploader stores image blobs and returns a public URL for each.
type Uploader interface {
	// Upload persists the image and returns its public URL.
	Upload(ctx context.Context, data []byte, contentType string) (string, error)

	// Delete removes a previously uploaded image by its public URL.
	// Unknown URLs are ignored.
	Delete(ctx context.Context, url string) error
}

// extByContentType maps the accepted image content types to file extensions.
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LocalUploader implements Uploader on a local directory.
type LocalUploader struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

var _ Uploader = (*LocalUploader)(nil)

// NewLocalUploader creates an Uploader rooted at dir, creating it when
// missing. Returned URLs are baseURL + "/" + filename.
func NewLocalUploader(dir, baseURL string, logger *slog.Logger) (*LocalUploader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	return &LocalUploader{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(slog.String("component", "media")),
	}, nil
}

// Upload implements Uploader.Upload.
func (u *LocalUploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image upload")
	}
	if len(data) > MaxUploadBytes {
		return "", fmt.Errorf("image exceeds maximum size of %d bytes", MaxUploadBytes)
	}
	ext, ok := extByContentType[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image content type %q", contentType)
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(u.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	u.logger.Debug("image stored",
		slog.String("file", name),
		slog.Int("bytes", len(data)))
	return u.baseURL + "/" + name, nil
}

// Delete implements Uploader.Delete. Only the final path element of the URL
// is honored so a crafted URL cannot reach outside the media directory.
func (u *LocalUploader) Delete(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}

	name := path.Base(url)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return nil
	}

	if err := os.Remove(filepath.Join(u.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
