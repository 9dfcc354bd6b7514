package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("file not found")

// FileStore persists uploaded layer components under slash-separated keys.
// Remove is idempotent: removing a missing key is not an error. Move returns
// ErrNotFound when src is missing.
type FileStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Move(ctx context.Context, src, dst string) error
	Remove(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ContentType returns the media type stored alongside a layer component.
func ContentType(ext string) string {
	switch ext {
	case ".prj":
		return "text/plain"
	case ".zip":
		return "application/zip"
	}
	return "application/octet-stream"
}
