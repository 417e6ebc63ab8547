package services

import (
	"context"
	"fmt"
	"shop_admin_server/database"
	"shop_admin_server/lib"
	"shop_admin_server/structs/tables"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/samber/lo"
	"github.com/uptrace/bun"
)

type ProductService struct {
	logger  *gecho.Logger
	db      *database.DB
	storage *StorageService
}

func NewProductService(logger *gecho.Logger, db *database.DB, storage *StorageService) *ProductService {
	return &ProductService{
		logger:  logger,
		db:      db,
		storage: storage,
	}
}

// ProductListOptions narrows and orders the product list. The zero value
// lists every product by id.
type ProductListOptions struct {
	SearchTerm    string // matched against name, sku and slug
	ProductType   string
	ProductStatus string
	CategoryID    *int64
	TagID         *int64

	SortBy        string // id, name, price, stock, created_at
	SortDirection string // ASC or DESC

	Limit  *int // nil lists everything
	Offset int
}

const listQueryTimeout = 10 * time.Second

var sortableProductColumns = []string{"id", "name", "price", "stock", "created_at", "updated_at"}

func (o *ProductListOptions) validate() error {
	if o.SortBy != "" && !lo.Contains(sortableProductColumns, o.SortBy) {
		return lib.NewFieldError("sort_by", "The selected sort by is invalid.")
	}
	if o.SortDirection != "" && o.SortDirection != "ASC" && o.SortDirection != "DESC" {
		return lib.NewFieldError("sort_direction", "The selected sort direction is invalid.")
	}
	if o.Limit != nil && *o.Limit < 1 {
		return lib.NewFieldError("limit", "The limit field must be at least 1.")
	}
	if o.Offset < 0 {
		return lib.NewFieldError("offset", "The offset field must be at least 0.")
	}
	return nil
}

func (ps *ProductService) applyFilters(query *database.QueryBuilder[tables.Product], opts *ProductListOptions) *database.QueryBuilder[tables.Product] {
	if opts.SearchTerm != "" {
		like := "%" + strings.ToLower(opts.SearchTerm) + "%"
		query = query.WhereRaw("(lower(p.name) LIKE ? OR lower(p.sku) LIKE ? OR p.slug LIKE ?)", like, like, like)
	}
	if opts.ProductType != "" {
		query = query.Where("product_type", opts.ProductType)
	}
	if opts.ProductStatus != "" {
		query = query.Where("product_status", opts.ProductStatus)
	}
	if opts.CategoryID != nil {
		query = query.WhereRaw("p.id IN (SELECT product_id FROM category_product WHERE category_id = ?)", *opts.CategoryID)
	}
	if opts.TagID != nil {
		query = query.WhereRaw("p.id IN (SELECT product_id FROM product_tag WHERE tag_id = ?)", *opts.TagID)
	}
	return query
}

func (ps *ProductService) applySorting(query *database.QueryBuilder[tables.Product], opts *ProductListOptions) *database.QueryBuilder[tables.Product] {
	sortBy := lo.Ternary(opts.SortBy != "", opts.SortBy, "id")
	direction := lo.Ternary(opts.SortDirection == "DESC", database.DESC, database.ASC)

	query = query.OrderBy(sortBy, direction)
	if sortBy != "id" {
		query = query.OrderBy("id", database.ASC)
	}
	return query
}

// List returns every product matching opts with its full tree
func (ps *ProductService) List(ctx context.Context, opts *ProductListOptions) ([]tables.Product, error) {
	startTime := time.Now()
	if opts == nil {
		opts = &ProductListOptions{}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	query := database.Query[tables.Product](ps.db).
		Relation("Categories").
		Relation("Tags").
		Timeout(listQueryTimeout)
	query = ps.applySorting(ps.applyFilters(query, opts), opts)
	if opts.Limit != nil {
		query = query.Limit(*opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	products, err := query.All(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch products", gecho.Field("error", err))
		return nil, lib.MapDBError(err)
	}

	refs := make([]*tables.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	if err := loadProductTrees(ctx, ps.db, refs); err != nil {
		return nil, lib.MapDBError(err)
	}

	ps.logger.Debug("Products fetched successfully",
		gecho.Field("count", len(products)),
		gecho.Field("duration", time.Since(startTime)),
	)
	return products, nil
}

// Get returns one product with its full tree
func (ps *ProductService) Get(ctx context.Context, id int64) (*tables.Product, error) {
	return getProductTree(ctx, ps.db, id)
}

func getProductTree(ctx context.Context, db bun.IDB, id int64) (*tables.Product, error) {
	product, err := database.Query[tables.Product](db).
		Relation("Categories").
		Relation("Tags").
		Where("id", id).
		First(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	if err := loadProductTrees(ctx, db, []*tables.Product{product}); err != nil {
		return nil, lib.MapDBError(err)
	}
	return product, nil
}

// loadProductTrees fills variants (with attribute values and images) and
// product images. Collections are never left nil.
func loadProductTrees(ctx context.Context, db bun.IDB, products []*tables.Product) error {
	if len(products) == 0 {
		return nil
	}
	productIDs := lo.Map(products, func(p *tables.Product, _ int) int64 { return p.ID })

	variants, err := database.Query[tables.ProductVariant](db).
		Relation("Attributes").
		WhereIn("product_id", productIDs).
		OrderBy("id", database.ASC).
		All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load variants: %w", err)
	}
	variantIDs := lo.Map(variants, func(v tables.ProductVariant, _ int) int64 { return v.ID })

	productImages, err := loadImages(ctx, db, tables.OwnerProduct, productIDs)
	if err != nil {
		return fmt.Errorf("failed to load product images: %w", err)
	}
	variantImages, err := loadImages(ctx, db, tables.OwnerVariant, variantIDs)
	if err != nil {
		return fmt.Errorf("failed to load variant images: %w", err)
	}

	variantsByProduct := map[int64][]*tables.ProductVariant{}
	for i := range variants {
		v := &variants[i]
		v.Images = lo.Ternary(variantImages[v.ID] != nil, variantImages[v.ID], []tables.Image{})
		if v.Attributes == nil {
			v.Attributes = []tables.AttributeValue{}
		}
		variantsByProduct[v.ProductID] = append(variantsByProduct[v.ProductID], v)
	}

	for _, p := range products {
		p.Variants = lo.Ternary(variantsByProduct[p.ID] != nil, variantsByProduct[p.ID], []*tables.ProductVariant{})
		p.Images = lo.Ternary(productImages[p.ID] != nil, productImages[p.ID], []tables.Image{})
		if p.Categories == nil {
			p.Categories = []tables.Category{}
		}
		if p.Tags == nil {
			p.Tags = []tables.Tag{}
		}
	}
	return nil
}

// Delete removes a product together with its variants and every image they own
func (ps *ProductService) Delete(ctx context.Context, id int64) error {
	deleted, err := ps.deleteProducts(ctx, []int64{id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// BulkDelete removes every product in ids and reports how many existed
func (ps *ProductService) BulkDelete(ctx context.Context, ids []int64) (int, error) {
	return ps.deleteProducts(ctx, lo.Uniq(ids))
}

func (ps *ProductService) deleteProducts(ctx context.Context, ids []int64) (int, error) {
	var obsolete []string
	deleted, err := database.TransactionWithResult(ctx, ps.db, func(ctx context.Context, tx bun.Tx) (int, error) {
		variantIDs, err := database.Pluck[tables.ProductVariant, int64](ctx,
			database.Query[tables.ProductVariant](tx).WhereIn("product_id", ids), "id")
		if err != nil {
			return 0, err
		}

		productPaths, err := deleteOwnerImages(ctx, tx, tables.OwnerProduct, ids)
		if err != nil {
			return 0, err
		}
		variantPaths, err := deleteOwnerImages(ctx, tx, tables.OwnerVariant, variantIDs)
		if err != nil {
			return 0, err
		}
		obsolete = append(productPaths, variantPaths...)

		// variants and pivot rows follow through ON DELETE CASCADE
		return database.DeleteByIDs[tables.Product](ctx, tx, ids)
	})
	if err != nil {
		ps.logger.Error("Failed to delete products", gecho.Field("error", err), gecho.Field("ids", ids))
		return 0, lib.MapDBError(err)
	}

	ps.removeUnreferenced(ctx, obsolete)
	ps.logger.Info("Products deleted", gecho.Field("requested", len(ids)), gecho.Field("deleted", deleted))
	return deleted, nil
}

// removeUnreferenced deletes stored files no image row points at any more
func (ps *ProductService) removeUnreferenced(ctx context.Context, paths []string) {
	for _, path := range lo.Uniq(paths) {
		inUse, err := database.Query[tables.Image](ps.db).Where("image_path", path).Exists(ctx)
		if err != nil {
			ps.logger.Warn("Failed to check image usage", gecho.Field("path", path), gecho.Field("error", err))
			continue
		}
		if !inUse {
			ps.storage.Remove(path)
		}
	}
}
