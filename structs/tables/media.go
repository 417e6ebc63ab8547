package tables

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type OwnerType string

const (
	OwnerProduct OwnerType = "product"
	OwnerVariant OwnerType = "product_variant"
)

// ImageOwner is the tagged reference from an image to the record it belongs to
type ImageOwner struct {
	Type OwnerType
	ID   int64
}

type Image struct {
	bun.BaseModel `bun:"table:images,alias:i"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	ImagePath     string    `bun:"image_path,notnull" json:"image_path"`
	IsFeatured    bool      `bun:"is_featured,notnull,default:false" json:"is_featured"`
	OwnerType     OwnerType `bun:"owner_type,notnull" json:"owner_type"`
	OwnerID       int64     `bun:"owner_id,notnull" json:"owner_id"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (i *Image) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	touchTimestamps(query, &i.CreatedAt, &i.UpdatedAt)
	return nil
}

func (i *Image) Owner() ImageOwner {
	return ImageOwner{Type: i.OwnerType, ID: i.OwnerID}
}

// NewImage builds an image row for the given owner
func NewImage(owner ImageOwner, path string, featured bool) *Image {
	return &Image{
		ImagePath:  path,
		IsFeatured: featured,
		OwnerType:  owner.Type,
		OwnerID:    owner.ID,
	}
}
