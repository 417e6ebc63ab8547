package tables

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Slug          string    `bun:"slug,notnull" json:"slug"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (c *Category) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	touchTimestamps(query, &c.CreatedAt, &c.UpdatedAt)
	return nil
}

type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:t"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Slug          string    `bun:"slug,notnull" json:"slug"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (t *Tag) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	touchTimestamps(query, &t.CreatedAt, &t.UpdatedAt)
	return nil
}

type Attribute struct {
	bun.BaseModel `bun:"table:attributes,alias:a"`
	ID            int64            `bun:"id,pk,autoincrement" json:"id"`
	Name          string           `bun:"name,notnull" json:"name"`
	Slug          string           `bun:"slug,notnull" json:"slug"`
	CreatedAt     time.Time        `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time        `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
	Values        []AttributeValue `bun:"rel:has-many,join:id=attribute_id" json:"values,omitempty"`
}

func (a *Attribute) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	touchTimestamps(query, &a.CreatedAt, &a.UpdatedAt)
	return nil
}

// AttributeValue carries no timestamps
type AttributeValue struct {
	bun.BaseModel `bun:"table:attribute_values,alias:av"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	AttributeID   int64  `bun:"attribute_id,notnull" json:"attribute_id"`
	Value         string `bun:"value,notnull" json:"value"`
}

func (c *Category) Rename(name string) { c.Name = name }
func (c *Category) SetSlug(slug string) { c.Slug = slug }

func (t *Tag) Rename(name string) { t.Name = name }
func (t *Tag) SetSlug(slug string) { t.Slug = slug }

func (a *Attribute) Rename(name string) { a.Name = name }
func (a *Attribute) SetSlug(slug string) { a.Slug = slug }
