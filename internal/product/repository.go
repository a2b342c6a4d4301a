package product

import (
	"context"

	"github.com/vendora/service/internal/firm"
	"github.com/vendora/service/internal/media"
)

// Repository defines product storage operations.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	// ListByFirm returns the firm's products in storage order.
	ListByFirm(ctx context.Context, firmID string) ([]*Product, error)
	// Delete removes the product row. Returns ErrNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
}

// FirmDirectory is the slice of the firm repository the product lifecycle
// needs: resolving the owning firm and maintaining its product list.
type FirmDirectory interface {
	GetByID(ctx context.Context, id string) (*firm.Firm, error)
	AppendProduct(ctx context.Context, firmID, productID string) error
}

// MediaStore uploads product images. Deletion is deliberately absent: product
// removal does not clean up stored media.
type MediaStore interface {
	Put(ctx context.Context, namespace string, up media.Upload) (media.Object, error)
}
