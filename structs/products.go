package structs

import (
	"github.com/shopspring/decimal"
)

// ProductRequest is the body of product create and update calls. Files travel
// next to it in a multipart form and are attached as Uploads by the handler.
type ProductRequest struct {
	Name          string           `json:"name" validate:"required,max=255"`
	Price         *decimal.Decimal `json:"price" validate:"required"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty"`
	SKU           *string          `json:"sku,omitempty"`
	Stock         *int             `json:"stock,omitempty"`
	Slug          *string          `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description   *string          `json:"description,omitempty"`
	ProductType   string           `json:"productType" validate:"required"`
	ProductStatus string           `json:"productStatus" validate:"required"`
	Categories    []int64          `json:"categories,omitempty"`
	Tags          []int64          `json:"tags,omitempty"`
	Variants      []VariantRequest `json:"variants,omitempty" validate:"omitempty,dive"`

	// update only
	ExistingGalleryImages []string `json:"existingGalleryImages,omitempty"`
	RemovedImages         []string `json:"removedImages,omitempty"`
}

type VariantRequest struct {
	ID         *int64            `json:"id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Price      *decimal.Decimal  `json:"price,omitempty"`
	SalePrice  *decimal.Decimal  `json:"salePrice,omitempty"`
	SKU        *string           `json:"sku,omitempty"`
	Stock      *int              `json:"stock,omitempty"`
}
