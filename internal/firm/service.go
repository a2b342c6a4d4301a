package firm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vendora/service/internal/media"
)

// CreateInput holds the validated request fields for creating a firm. Image
// is nil when the request carried no upload.
type CreateInput struct {
	FirmName string
	Area     string
	Category string
	Region   string
	Offer    string
	Image    *media.Upload
}

// Service orchestrates the firm lifecycle: image upload, firm persistence,
// and the vendor back-reference update.
type Service struct {
	firms   Repository
	vendors VendorDirectory
	media   MediaStore
	log     *zap.Logger
}

// NewService creates a new firm Service.
func NewService(firms Repository, vendors VendorDirectory, media MediaStore, log *zap.Logger) *Service {
	return &Service{firms: firms, vendors: vendors, media: media, log: log}
}

// Create resolves the caller's vendor, enforces the one-firm rule, stores the
// image (if any), persists the firm, and appends its id to the vendor's firm
// list. A storage failure aborts before any firm row exists; a failure on the
// vendor update triggers deletion of the just-created firm so no orphan is
// left behind.
func (s *Service) Create(ctx context.Context, vendorID string, in CreateInput) (*Firm, error) {
	v, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if len(v.Firm) > 0 {
		return nil, ErrVendorHasFirm
	}

	var imageURL, imageKey *string
	if in.Image != nil {
		obj, err := s.media.Put(ctx, media.FirmImages, *in.Image)
		if err != nil {
			return nil, fmt.Errorf("store firm image: %w", err)
		}
		imageURL, imageKey = &obj.URL, &obj.Key
	}

	f := &Firm{
		FirmName: in.FirmName,
		Area:     in.Area,
		Category: in.Category,
		Region:   in.Region,
		Offer:    in.Offer,
		Image:    imageURL,
		ImageKey: imageKey,
		VendorID: v.ID,
	}
	if err := s.firms.Create(ctx, f); err != nil {
		return nil, err
	}

	if err := s.vendors.AppendFirm(ctx, v.ID, f.ID); err != nil {
		if delErr := s.firms.Delete(ctx, f.ID); delErr != nil {
			s.log.Error("orphaned firm left after failed vendor update",
				zap.String("firm_id", f.ID),
				zap.String("vendor_id", v.ID),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("link firm to vendor: %w", err)
	}

	return f, nil
}

// Delete removes a firm and attempts to remove its stored image first. Image
// removal is best effort: a storage failure is logged and never blocks the
// record deletion. The owning vendor's firm list is left untouched.
func (s *Service) Delete(ctx context.Context, firmID string) error {
	f, err := s.firms.GetByID(ctx, firmID)
	if err != nil {
		return err
	}

	if f.ImageKey != nil {
		if err := s.media.Remove(ctx, *f.ImageKey); err != nil {
			s.log.Warn("firm image cleanup failed",
				zap.String("firm_id", f.ID),
				zap.String("image_key", *f.ImageKey),
				zap.Error(err),
			)
		}
	}

	return s.firms.Delete(ctx, firmID)
}
