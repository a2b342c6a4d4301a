package firm

import (
	"context"

	"github.com/vendora/service/internal/media"
	"github.com/vendora/service/internal/vendor"
)

// Repository defines firm storage operations.
type Repository interface {
	// Create inserts the firm and fills in the generated fields. Returns
	// ErrVendorHasFirm when the vendor already owns a firm (enforced by the
	// store, so concurrent creates cannot both succeed).
	Create(ctx context.Context, f *Firm) error
	GetByID(ctx context.Context, id string) (*Firm, error)
	// Delete removes the firm row. Returns ErrNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
	// AppendProduct adds a product id to the firm's products reference list.
	AppendProduct(ctx context.Context, firmID, productID string) error
}

// VendorDirectory is the slice of the vendor repository the firm lifecycle
// needs: resolving the caller and maintaining the vendor-side firm list.
type VendorDirectory interface {
	GetByID(ctx context.Context, id string) (*vendor.Vendor, error)
	AppendFirm(ctx context.Context, vendorID, firmID string) error
}

// MediaStore uploads and removes firm images.
type MediaStore interface {
	Put(ctx context.Context, namespace string, up media.Upload) (media.Object, error)
	Remove(ctx context.Context, key string) error
}
