package structs

import "github.com/shopspring/decimal"

// TaxonomyRequest creates or updates a category, tag or attribute
type TaxonomyRequest struct {
	Name string  `json:"name" validate:"required,max=255"`
	Slug *string `json:"slug,omitempty" validate:"omitempty,max=255"`
}

type AttributeValueRequest struct {
	Value string `json:"value" validate:"required,max=255"`
}

type CreateOrderRequest struct {
	UserID      int64            `json:"user_id" validate:"required"`
	TotalAmount *decimal.Decimal `json:"total_amount" validate:"required"`
}

type UpdateOrderRequest struct {
	Status      *string          `json:"status,omitempty"`
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
}
