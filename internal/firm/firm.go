// Package firm implements the firm lifecycle: creation with optional image
// upload and the one-firm-per-vendor rule, and deletion with best-effort
// media cleanup.
package firm

import (
	"errors"
	"time"
)

// Firm is a vendor's business listing.
type Firm struct {
	ID        string    `json:"id"`
	FirmName  string    `json:"firmName"`
	Area      string    `json:"area"`
	Category  string    `json:"category"`
	Region    string    `json:"region"`
	Offer     string    `json:"offer"`
	Image     *string   `json:"image,omitempty"`
	ImageKey  *string   `json:"-"`
	VendorID  string    `json:"vendor"`
	Products  []string  `json:"products"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ErrNotFound is returned when a firm does not exist.
var ErrNotFound = errors.New("no firm found")

// ErrVendorHasFirm is returned when the owning vendor already has a firm.
var ErrVendorHasFirm = errors.New("vendor can have only one firm")
