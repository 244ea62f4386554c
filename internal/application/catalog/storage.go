package catalog

import (
	"context"
	"io"
	"time"
)

// ObjectStorageService defines the interface for object storage operations
// Implemented by the S3-compatible store in infrastructure
type ObjectStorageService interface {
	// Upload stores an object under the given key
	Upload(ctx context.Context, storageKey, contentType string, body io.Reader) error

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// GenerateDownloadURL generates a presigned URL for downloading an object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}
