// Package product implements the product lifecycle: creation scoped to an
// existing firm with optional image upload, listing by firm, and deletion.
package product

import (
	"errors"
	"time"
)

// Product is a catalog item owned by a firm. Image holds the public URL of
// the stored image, or the empty string when no image was uploaded.
type Product struct {
	ID          string    `json:"id"`
	ProductName string    `json:"productName"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	BestSeller  bool      `json:"bestSeller"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	ImageKey    string    `json:"-"`
	FirmID      string    `json:"firm"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ErrNotFound is returned when a product does not exist.
var ErrNotFound = errors.New("no product found")
