package tables

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`
	ID            int64               `bun:"id,pk,autoincrement" json:"id"`
	Name          string              `bun:"name,notnull" json:"name"`
	Price         decimal.Decimal     `bun:"price,type:numeric(12,2),notnull" json:"price"`
	SalePrice     decimal.NullDecimal `bun:"sale_price,type:numeric(12,2)" json:"sale_price"`
	SKU           string              `bun:"sku,unique,notnull" json:"sku"`
	Stock         int                 `bun:"stock,notnull,default:0" json:"stock"`
	Slug          string              `bun:"slug,unique,notnull" json:"slug"`
	Description   *string             `bun:"description" json:"description"`
	ProductType   string              `bun:"product_type,notnull" json:"product_type"`
	ProductStatus string              `bun:"product_status,notnull" json:"product_status"`
	CreatedAt     time.Time           `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time           `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	Categories []Category        `bun:"m2m:category_product,join:Product=Category" json:"categories"`
	Tags       []Tag             `bun:"m2m:product_tag,join:Product=Tag" json:"tags"`
	Variants   []*ProductVariant `bun:"rel:has-many,join:id=product_id" json:"variants"`
	Images     []Image           `bun:"-" json:"images"` // loaded by owner reference
}

func (p *Product) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	touchTimestamps(query, &p.CreatedAt, &p.UpdatedAt)
	return nil
}

// Owner returns the image owner reference for the product
func (p *Product) Owner() ImageOwner {
	return ImageOwner{Type: OwnerProduct, ID: p.ID}
}

type ProductVariant struct {
	bun.BaseModel `bun:"table:product_variants,alias:pv"`
	ID            int64               `bun:"id,pk,autoincrement" json:"id"`
	ProductID     int64               `bun:"product_id,notnull" json:"product_id"`
	Price         decimal.Decimal     `bun:"price,type:numeric(12,2),notnull,default:0" json:"price"`
	SalePrice     decimal.NullDecimal `bun:"sale_price,type:numeric(12,2)" json:"sale_price"`
	SKU           string              `bun:"sku,unique,notnull" json:"sku"`
	Stock         int                 `bun:"stock,notnull,default:0" json:"stock"`
	CreatedAt     time.Time           `bun:"created_at,notnull,default:current_timestamp" json:"-"`
	UpdatedAt     time.Time           `bun:"updated_at,notnull,default:current_timestamp" json:"-"`

	Attributes []AttributeValue `bun:"m2m:variant_attributes,join:Variant=AttributeValue" json:"attributes"`
	Images     []Image          `bun:"-" json:"images"`
}

func (v *ProductVariant) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	touchTimestamps(query, &v.CreatedAt, &v.UpdatedAt)
	return nil
}

func (v *ProductVariant) Owner() ImageOwner {
	return ImageOwner{Type: OwnerVariant, ID: v.ID}
}

// CategoryProduct is the join table between products and categories
type CategoryProduct struct {
	bun.BaseModel `bun:"table:category_product,alias:cp"`
	ProductID     int64     `bun:"product_id,pk"`
	Product       *Product  `bun:"rel:belongs-to,join:product_id=id"`
	CategoryID    int64     `bun:"category_id,pk"`
	Category      *Category `bun:"rel:belongs-to,join:category_id=id"`
}

// ProductTag is the join table between products and tags
type ProductTag struct {
	bun.BaseModel `bun:"table:product_tag,alias:pt"`
	ProductID     int64    `bun:"product_id,pk"`
	Product       *Product `bun:"rel:belongs-to,join:product_id=id"`
	TagID         int64    `bun:"tag_id,pk"`
	Tag           *Tag     `bun:"rel:belongs-to,join:tag_id=id"`
}

// VariantAttribute is the join table between variants and attribute values
type VariantAttribute struct {
	bun.BaseModel    `bun:"table:variant_attributes,alias:va"`
	VariantID        int64           `bun:"variant_id,pk"`
	Variant          *ProductVariant `bun:"rel:belongs-to,join:variant_id=id"`
	AttributeValueID int64           `bun:"attribute_value_id,pk"`
	AttributeValue   *AttributeValue `bun:"rel:belongs-to,join:attribute_value_id=id"`
}

// JoinModels must be registered on the bun DB before any m2m relation is queried
func JoinModels() []any {
	return []any{
		(*CategoryProduct)(nil),
		(*ProductTag)(nil),
		(*VariantAttribute)(nil),
	}
}
