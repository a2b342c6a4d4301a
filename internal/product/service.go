package product

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vendora/service/internal/media"
)

// CreateInput holds the validated request fields for creating a product.
// Image is nil when the request carried no upload.
type CreateInput struct {
	ProductName string
	Price       float64
	Category    string
	BestSeller  bool
	Description string
	Image       *media.Upload
}

// FirmProducts is the listing result for a firm's catalog.
type FirmProducts struct {
	RestaurantName string     `json:"restaurantName"`
	Products       []*Product `json:"products"`
}

// Service orchestrates the product lifecycle: image upload, product
// persistence scoped to an existing firm, and the firm back-reference update.
type Service struct {
	products Repository
	firms    FirmDirectory
	media    MediaStore
	log      *zap.Logger
}

// NewService creates a new product Service.
func NewService(products Repository, firms FirmDirectory, media MediaStore, log *zap.Logger) *Service {
	return &Service{products: products, firms: firms, media: media, log: log}
}

// Create resolves the owning firm, stores the image (if any), persists the
// product, and appends its id to the firm's products list. No image is
// uploaded for a firm that does not exist. An absent image is persisted as an
// empty reference, not a null.
func (s *Service) Create(ctx context.Context, firmID string, in CreateInput) (*Product, error) {
	f, err := s.firms.GetByID(ctx, firmID)
	if err != nil {
		return nil, err
	}

	var imageURL, imageKey string
	if in.Image != nil {
		obj, err := s.media.Put(ctx, media.ProductImages, *in.Image)
		if err != nil {
			return nil, fmt.Errorf("store product image: %w", err)
		}
		imageURL, imageKey = obj.URL, obj.Key
	}

	p := &Product{
		ProductName: in.ProductName,
		Price:       in.Price,
		Category:    in.Category,
		BestSeller:  in.BestSeller,
		Description: in.Description,
		Image:       imageURL,
		ImageKey:    imageKey,
		FirmID:      f.ID,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	if err := s.firms.AppendProduct(ctx, f.ID, p.ID); err != nil {
		if delErr := s.products.Delete(ctx, p.ID); delErr != nil {
			s.log.Error("orphaned product left after failed firm update",
				zap.String("product_id", p.ID),
				zap.String("firm_id", f.ID),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("link product to firm: %w", err)
	}

	return p, nil
}

// ListByFirm returns the firm's display name and its products in storage
// order. A missing firm is an error, never an empty listing.
func (s *Service) ListByFirm(ctx context.Context, firmID string) (*FirmProducts, error) {
	f, err := s.firms.GetByID(ctx, firmID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListByFirm(ctx, f.ID)
	if err != nil {
		return nil, err
	}

	return &FirmProducts{RestaurantName: f.FirmName, Products: products}, nil
}

// Delete removes a product by id. The owning firm's products list and any
// stored image are intentionally left as they are.
func (s *Service) Delete(ctx context.Context, productID string) error {
	return s.products.Delete(ctx, productID)
}
