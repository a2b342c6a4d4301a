package firm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vendora/service/internal/media"
	"github.com/vendora/service/internal/vendor"
)

type stubVendors struct {
	vendors   map[string]*vendor.Vendor
	appendErr error
}

func (s *stubVendors) GetByID(_ context.Context, id string) (*vendor.Vendor, error) {
	v, ok := s.vendors[id]
	if !ok {
		return nil, vendor.ErrNotFound
	}
	return v, nil
}

func (s *stubVendors) AppendFirm(_ context.Context, vendorID, firmID string) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	v, ok := s.vendors[vendorID]
	if !ok {
		return vendor.ErrNotFound
	}
	v.Firm = append(v.Firm, firmID)
	return nil
}

type stubFirms struct {
	byID      map[string]*Firm
	createErr error
	nextID    string
	deleted   []string
}

func newStubFirms() *stubFirms {
	return &stubFirms{byID: map[string]*Firm{}, nextID: "F1"}
}

func (s *stubFirms) Create(_ context.Context, f *Firm) error {
	if s.createErr != nil {
		return s.createErr
	}
	f.ID = s.nextID
	s.byID[f.ID] = f
	return nil
}

func (s *stubFirms) GetByID(_ context.Context, id string) (*Firm, error) {
	f, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return f, nil
}

func (s *stubFirms) Delete(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubFirms) AppendProduct(_ context.Context, firmID, productID string) error {
	f, ok := s.byID[firmID]
	if !ok {
		return ErrNotFound
	}
	f.Products = append(f.Products, productID)
	return nil
}

type stubMedia struct {
	putErr     error
	removeErr  error
	putCalls   []string
	removed    []string
	nextObject media.Object
}

func (s *stubMedia) Put(_ context.Context, namespace string, _ media.Upload) (media.Object, error) {
	if s.putErr != nil {
		return media.Object{}, s.putErr
	}
	s.putCalls = append(s.putCalls, namespace)
	return s.nextObject, nil
}

func (s *stubMedia) Remove(_ context.Context, key string) error {
	s.removed = append(s.removed, key)
	return s.removeErr
}

func newService(vendors *stubVendors, firms *stubFirms, m *stubMedia) *Service {
	return NewService(firms, vendors, m, zap.NewNop())
}

func sampleUpload() *media.Upload {
	return &media.Upload{Reader: strings.NewReader("payload"), Filename: "logo.png"}
}

func TestCreate_LinksFirmAndVendorBothWays(t *testing.T) {
	vendors := &stubVendors{vendors: map[string]*vendor.Vendor{
		"V1": {ID: "V1", Firm: []string{}},
	}}
	firms := newStubFirms()
	m := &stubMedia{}

	f, err := newService(vendors, firms, m).Create(context.Background(), "V1", CreateInput{
		FirmName: "Joe's", Area: "X", Category: "food", Region: "north", Offer: "10%",
	})
	require.NoError(t, err)

	assert.Equal(t, "F1", f.ID)
	assert.Equal(t, "Joe's", f.FirmName)
	assert.Equal(t, "V1", f.VendorID)
	assert.Nil(t, f.Image)
	assert.Equal(t, []string{"F1"}, vendors.vendors["V1"].Firm)
	assert.Empty(t, m.putCalls)
}

func TestCreate_VendorNotFound(t *testing.T) {
	vendors := &stubVendors{vendors: map[string]*vendor.Vendor{}}
	firms := newStubFirms()
	m := &stubMedia{}

	_, err := newService(vendors, firms, m).Create(context.Background(), "missing", CreateInput{
		FirmName: "Joe's", Image: sampleUpload(),
	})

	assert.ErrorIs(t, err, vendor.ErrNotFound)
	assert.Empty(t, firms.byID)
	assert.Empty(t, m.putCalls, "no upload for an unresolved vendor")
}

func TestCreate_VendorAlreadyHasFirm(t *testing.T) {
	vendors := &stubVendors{vendors: map[string]*vendor.Vendor{
		"V1": {ID: "V1", Firm: []string{"F0"}},
	}}
	firms := newStubFirms()
	m := &stubMedia{}

	_, err := newService(vendors, firms, m).Create(context.Background(), "V1", CreateInput{FirmName: "Second"})

	assert.ErrorIs(t, err, ErrVendorHasFirm)
	assert.Equal(t, []string{"F0"}, vendors.vendors["V1"].Firm, "vendor firm list unchanged")
	assert.Empty(t, firms.byID)
}

func TestCreate_RepositoryConflictSurfacesAsVendorHasFirm(t *testing.T) {
	// The storage layer enforces the one-firm rule too; a concurrent create
	// that slips past the read check still comes back as the same conflict.
	vendors := &stubVendors{vendors: map[string]*vendor.Vendor{
		"V1": {ID: "V1", Firm: []string{}},
	}}
	firms := newStubFirms()
	firms.createErr = ErrVendorHasFirm
	m := &stubMedia{}

	_, err := newService(vendors, firms, m).Create(context.Background(), "V1", CreateInput{FirmName: "Joe's"})

	assert.ErrorIs(t, err, ErrVendorHasFirm)
	assert.Empty(t, vendors.vendors["V1"].Firm)
}

func TestCreate_ImageStoreFailureCreatesNoFirm(t *testing.T) {
	vendors := &stubVendors{vendors: map[string]*vendor.Vendor{
		"V1": {ID: "V1", Firm: []string{}},
	}}
	firms := newStubFirms()
	m := &stubMedia{putErr: errors.New("store unreachable")}

	_, err := newService(vendors, firms, m).Create(context.Background(), "V1", CreateInput{
		FirmName: "Joe's", Image: sampleUpload(),
	})

	assert.Error(t, err)
	assert.Empty(t, firms.byID, "no partial firm record")
	assert.Empty(t, vendors.vendors["V1"].Firm)
}

func TestCreate_WithImageStoresUnderFirmNamespace(t *testing.T) {
	vendors := &stubVendors{vendors: map[string]*vendor.Vendor{
		"V1": {ID: "V1", Firm: []string{}},
	}}
	firms := newStubFirms()
	m := &stubMedia{nextObject: media.Object{
		Key: "firms/abc123.png",
		URL: "http://cdn.test/firms/abc123.png",
	}}

	f, err := newService(vendors, firms, m).Create(context.Background(), "V1", CreateInput{
		FirmName: "Joe's", Image: sampleUpload(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{media.FirmImages}, m.putCalls)
	require.NotNil(t, f.Image)
	assert.Equal(t, "http://cdn.test/firms/abc123.png", *f.Image)
	require.NotNil(t, f.ImageKey)
	assert.Equal(t, "firms/abc123.png", *f.ImageKey)
}

func TestCreate_VendorUpdateFailureDeletesCreatedFirm(t *testing.T) {
	vendors := &stubVendors{
		vendors:   map[string]*vendor.Vendor{"V1": {ID: "V1", Firm: []string{}}},
		appendErr: errors.New("write rejected"),
	}
	firms := newStubFirms()
	m := &stubMedia{}

	_, err := newService(vendors, firms, m).Create(context.Background(), "V1", CreateInput{FirmName: "Joe's"})

	assert.Error(t, err)
	assert.Equal(t, []string{"F1"}, firms.deleted, "compensating delete removed the orphan")
	assert.Empty(t, firms.byID)
}

func TestDelete_RemovesStoredImageByRecordedKey(t *testing.T) {
	key := "firms/abc123.png"
	url := "http://cdn.test/firms/abc123.png"
	vendors := &stubVendors{vendors: map[string]*vendor.Vendor{
		"V1": {ID: "V1", Firm: []string{"F1"}},
	}}
	firms := newStubFirms()
	firms.byID["F1"] = &Firm{ID: "F1", FirmName: "Joe's", VendorID: "V1", Image: &url, ImageKey: &key}
	m := &stubMedia{}

	err := newService(vendors, firms, m).Delete(context.Background(), "F1")
	require.NoError(t, err)

	assert.Equal(t, []string{key}, m.removed, "exactly one media delete with the recorded key")
	assert.Empty(t, firms.byID)
	assert.Equal(t, []string{"F1"}, vendors.vendors["V1"].Firm, "vendor firm list is not pruned")
}

func TestDelete_WithoutImageSkipsMediaStore(t *testing.T) {
	vendors := &stubVendors{vendors: map[string]*vendor.Vendor{}}
	firms := newStubFirms()
	firms.byID["F1"] = &Firm{ID: "F1", FirmName: "Joe's", VendorID: "V1"}
	m := &stubMedia{}

	require.NoError(t, newService(vendors, firms, m).Delete(context.Background(), "F1"))
	assert.Empty(t, m.removed)
}

func TestDelete_ImageCleanupFailureDoesNotBlockDeletion(t *testing.T) {
	key := "firms/abc123.png"
	vendors := &stubVendors{vendors: map[string]*vendor.Vendor{}}
	firms := newStubFirms()
	firms.byID["F1"] = &Firm{ID: "F1", VendorID: "V1", ImageKey: &key}
	m := &stubMedia{removeErr: errors.New("store unreachable")}

	err := newService(vendors, firms, m).Delete(context.Background(), "F1")

	assert.NoError(t, err, "best-effort cleanup never blocks record deletion")
	assert.Empty(t, firms.byID)
}

func TestDelete_NotFound(t *testing.T) {
	vendors := &stubVendors{vendors: map[string]*vendor.Vendor{}}
	firms := newStubFirms()
	m := &stubMedia{}

	err := newService(vendors, firms, m).Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, m.removed)
}
