package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	uploads      map[string][]byte
	contentTypes map[string]string
	uploadErr    error
	deleteErr    error
	deleted      []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		uploads:      map[string][]byte{},
		contentTypes: map[string]string{},
	}
}

func (f *fakeBackend) Upload(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.uploads[key] = data
	f.contentTypes[key] = contentType
	return nil
}

func (f *fakeBackend) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBackend) PublicURL(key string) string {
	return "http://cdn.test/" + key
}

func pngPayload(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return &buf
}

func TestPut_FirmNamespaceNormalizesToPNG(t *testing.T) {
	backend := newFakeBackend()
	store := NewStore(backend)

	obj, err := store.Put(context.Background(), FirmImages, Upload{
		Reader:   pngPayload(t),
		Filename: "logo.webp",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.Key, "firms/"))
	assert.True(t, strings.HasSuffix(obj.Key, ".png"))
	assert.Equal(t, "http://cdn.test/"+obj.Key, obj.URL)
	assert.Equal(t, "image/png", backend.contentTypes[obj.Key])

	_, format, err := image.DecodeConfig(bytes.NewReader(backend.uploads[obj.Key]))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestPut_ProductNamespaceNormalizesToJPEGAndKeepsFilename(t *testing.T) {
	backend := newFakeBackend()
	store := NewStore(backend)

	obj, err := store.Put(context.Background(), ProductImages, Upload{
		Reader:   pngPayload(t),
		Filename: "burger photo.png",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.Key, "product_images/"))
	assert.True(t, strings.HasSuffix(obj.Key, "-burger_photo.jpg"))
	assert.Equal(t, "image/jpeg", backend.contentTypes[obj.Key])

	_, format, err := image.DecodeConfig(bytes.NewReader(backend.uploads[obj.Key]))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestPut_KeysAreUniquePerUpload(t *testing.T) {
	backend := newFakeBackend()
	store := NewStore(backend)

	first, err := store.Put(context.Background(), FirmImages, Upload{Reader: pngPayload(t), Filename: "a.png"})
	require.NoError(t, err)
	second, err := store.Put(context.Background(), FirmImages, Upload{Reader: pngPayload(t), Filename: "a.png"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
}

func TestPut_RejectsUndecodablePayload(t *testing.T) {
	backend := newFakeBackend()
	store := NewStore(backend)

	_, err := store.Put(context.Background(), FirmImages, Upload{
		Reader:   strings.NewReader("not an image"),
		Filename: "junk.png",
	})
	assert.Error(t, err)
	assert.Empty(t, backend.uploads)
}

func TestPut_UnknownNamespace(t *testing.T) {
	backend := newFakeBackend()
	store := NewStore(backend)

	_, err := store.Put(context.Background(), "avatars", Upload{Reader: pngPayload(t), Filename: "a.png"})
	assert.Error(t, err)
	assert.Empty(t, backend.uploads)
}

func TestPut_BackendFailureSurfaces(t *testing.T) {
	backend := newFakeBackend()
	backend.uploadErr = errors.New("connection refused")
	store := NewStore(backend)

	_, err := store.Put(context.Background(), FirmImages, Upload{Reader: pngPayload(t), Filename: "a.png"})
	assert.Error(t, err)
}

func TestRemove_EmptyKeyIsNoOp(t *testing.T) {
	backend := newFakeBackend()
	store := NewStore(backend)

	require.NoError(t, store.Remove(context.Background(), ""))
	assert.Empty(t, backend.deleted)
}

func TestRemove_DeletesByStoredKey(t *testing.T) {
	backend := newFakeBackend()
	store := NewStore(backend)

	require.NoError(t, store.Remove(context.Background(), "firms/abc123.png"))
	assert.Equal(t, []string{"firms/abc123.png"}, backend.deleted)
}
