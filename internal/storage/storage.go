// Package storage defines the port for the remote object store holding
// catalog media. The MinIO implementation works with any S3-compatible
// provider; swap backends by changing the concrete type injected at startup.
package storage

import (
	"context"
	"io"
)

// Storage is the interface for uploading and removing binary objects.
type Storage interface {
	// Upload streams data to the store under the given key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}
