// Package media implements the catalog's media workflow on top of the object
// storage port: namespaced keys, per-namespace output formats, and deletion by
// stored key.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/google/uuid"

	"github.com/vendora/service/internal/storage"
)

// Namespaces group stored objects by owning entity kind. Each namespace pins
// the output format of everything stored under it, whatever the input was.
const (
	FirmImages    = "firms"          // normalized to PNG
	ProductImages = "product_images" // normalized to JPEG
)

// Object is the typed reference to a stored media object. Key addresses the
// object in the store and is what deletion uses; URL is the public display
// address. Both are persisted so the key is never re-derived from the URL.
type Object struct {
	Key string
	URL string
}

// Upload is an already-received binary payload handed in by the HTTP layer.
type Upload struct {
	Reader   io.Reader
	Filename string
}

// Store uploads and removes catalog media through an object-storage backend.
type Store struct {
	backend storage.Storage
}

// NewStore creates a media Store backed by the given object storage.
func NewStore(backend storage.Storage) *Store {
	return &Store{backend: backend}
}

// Put normalizes the payload to the namespace's output format, writes it to
// the backend under a collision-resistant key, and returns the typed
// reference. The key embeds the namespace as its folder prefix.
func (s *Store) Put(ctx context.Context, namespace string, up Upload) (Object, error) {
	img, _, err := image.Decode(up.Reader)
	if err != nil {
		return Object{}, fmt.Errorf("decode image %q: %w", up.Filename, err)
	}

	token := uuid.NewString()
	var (
		key string
		buf bytes.Buffer
	)

	switch namespace {
	case FirmImages:
		if err := png.Encode(&buf, img); err != nil {
			return Object{}, fmt.Errorf("encode png: %w", err)
		}
		key = namespace + "/" + token + ".png"
	case ProductImages:
		if err := jpeg.Encode(&buf, img, nil); err != nil {
			return Object{}, fmt.Errorf("encode jpeg: %w", err)
		}
		key = namespace + "/" + token + "-" + baseName(up.Filename) + ".jpg"
	default:
		return Object{}, fmt.Errorf("unknown media namespace %q", namespace)
	}

	contentType := "image/png"
	if namespace == ProductImages {
		contentType = "image/jpeg"
	}

	if err := s.backend.Upload(ctx, key, &buf, int64(buf.Len()), contentType); err != nil {
		return Object{}, fmt.Errorf("upload %q: %w", key, err)
	}

	return Object{Key: key, URL: s.backend.PublicURL(key)}, nil
}

// Remove deletes the object addressed by key. An empty key is a no-op so
// callers can pass whatever reference the entity record holds, present or not.
func (s *Store) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// baseName returns the upload's file name with directories and extension
// stripped, suitable for embedding in an object key.
func baseName(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." {
		return "upload"
	}
	return name
}
