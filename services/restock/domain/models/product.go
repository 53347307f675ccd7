package models

import (
	"strings"
	"time"

	"github.com/ghuser/restock/services/restock/domain"
)

// Product is a catalog item owned by exactly one user.
type Product struct {
	ID                string
	UserID            string // tenant scope: always filter by this in queries
	Name              string
	DefaultQuantity   int
	DefaultSupplierID string // empty when no default supplier is set
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewProduct constructs a valid Product. The name is stored trimmed.
func NewProduct(id, userID, name string, defaultQuantity int, defaultSupplierID, notes string, now time.Time) (Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, domain.NewValidationError("product_name", "Product name is required")
	}
	if defaultQuantity <= 0 {
		return Product{}, domain.NewValidationError("default_quantity", "Default quantity must be greater than 0")
	}
	if id == "" || userID == "" {
		return Product{}, domain.NewValidationError("id", "Product id and user id must be set")
	}
	return Product{
		ID:                id,
		UserID:            userID,
		Name:              name,
		DefaultQuantity:   defaultQuantity,
		DefaultSupplierID: defaultSupplierID,
		Notes:             strings.TrimSpace(notes),
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}
