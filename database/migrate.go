package database

import (
	"context"
	"fmt"
	"shop_admin_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

type tableDef struct {
	model       any
	foreignKeys []string
}

// schema lists every table in creation order, parents before children
func schema() []tableDef {
	return []tableDef{
		{model: (*tables.User)(nil)},
		{model: (*tables.Category)(nil)},
		{model: (*tables.Tag)(nil)},
		{model: (*tables.Attribute)(nil)},
		{model: (*tables.AttributeValue)(nil), foreignKeys: []string{
			`("attribute_id") REFERENCES "attributes" ("id") ON DELETE CASCADE`,
		}},
		{model: (*tables.Product)(nil)},
		{model: (*tables.ProductVariant)(nil), foreignKeys: []string{
			`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`,
		}},
		{model: (*tables.CategoryProduct)(nil), foreignKeys: []string{
			`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`,
			`("category_id") REFERENCES "categories" ("id") ON DELETE CASCADE`,
		}},
		{model: (*tables.ProductTag)(nil), foreignKeys: []string{
			`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`,
			`("tag_id") REFERENCES "tags" ("id") ON DELETE CASCADE`,
		}},
		{model: (*tables.VariantAttribute)(nil), foreignKeys: []string{
			`("variant_id") REFERENCES "product_variants" ("id") ON DELETE CASCADE`,
			`("attribute_value_id") REFERENCES "attribute_values" ("id") ON DELETE CASCADE`,
		}},
		{model: (*tables.Image)(nil)},
		{model: (*tables.Order)(nil), foreignKeys: []string{
			`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
		}},
	}
}

func (def tableDef) createQuery(db bun.IDB) *bun.CreateTableQuery {
	query := db.NewCreateTable().Model(def.model).IfNotExists()
	for _, fk := range def.foreignKeys {
		query = query.ForeignKey(fk)
	}
	return query
}

// Migrate creates any missing tables and indexes. It is idempotent.
func Migrate(ctx context.Context, db bun.IDB, logger *gecho.Logger) error {
	for _, def := range schema() {
		if _, err := def.createQuery(db).Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", def.model, err)
		}
	}

	_, err := db.NewCreateIndex().
		Model((*tables.Image)(nil)).
		Index("images_owner_idx").
		Column("owner_type", "owner_id").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create images owner index: %w", err)
	}

	logger.Info("Database schema is up to date", gecho.Field("tables", len(schema())))
	return nil
}
