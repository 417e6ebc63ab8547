package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"shop_admin_server/database"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// ProductUploads are the files sent next to a product request
type ProductUploads struct {
	Featured *multipart.FileHeader
	Gallery  []*multipart.FileHeader
	Variants map[int]*multipart.FileHeader // keyed by variant index
}

// Create stores a product with its taxonomy links, images and variants in one
// transaction and returns the full tree
func (ps *ProductService) Create(ctx context.Context, req *structs.ProductRequest, uploads *ProductUploads) (*tables.Product, error) {
	if err := ps.validateWrite(ctx, req, uploads); err != nil {
		return nil, err
	}

	w := &productWriter{logger: ps.logger, storage: ps.storage}
	id, err := database.TransactionWithResult(ctx, ps.db, func(ctx context.Context, tx bun.Tx) (int64, error) {
		w.tx = tx
		return w.create(ctx, req, uploads)
	})
	if err != nil {
		ps.storage.Remove(w.stored...)
		ps.logger.Error("Failed to create product", gecho.Field("error", err), gecho.Field("name", req.Name))
		return nil, lib.MapDBError(err)
	}

	ps.logger.Info("Product created", gecho.Field("product_id", id))
	return ps.Get(ctx, id)
}

// Update rewrites a product and reconciles its links, gallery and variants in
// one transaction. Missing products yield lib.ErrNotFound.
func (ps *ProductService) Update(ctx context.Context, id int64, req *structs.ProductRequest, uploads *ProductUploads) (*tables.Product, error) {
	if err := ps.validateWrite(ctx, req, uploads); err != nil {
		return nil, err
	}

	w := &productWriter{logger: ps.logger, storage: ps.storage}
	err := database.Transaction(ctx, ps.db, func(ctx context.Context, tx bun.Tx) error {
		w.tx = tx
		return w.update(ctx, id, req, uploads)
	})
	if err != nil {
		ps.storage.Remove(w.stored...)
		if !lib.IsNotFound(err) {
			ps.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("product_id", id))
		}
		return nil, lib.MapDBError(err)
	}

	ps.removeUnreferenced(ctx, w.obsolete)
	ps.logger.Info("Product updated", gecho.Field("product_id", id))
	return ps.Get(ctx, id)
}

// validateWrite checks references and uploads before anything is written
func (ps *ProductService) validateWrite(ctx context.Context, req *structs.ProductRequest, uploads *ProductUploads) error {
	ve := &lib.ValidationError{}

	if err := missingReferences[tables.Category](ctx, ps.db, "categories", req.Categories, ve); err != nil {
		return err
	}
	if err := missingReferences[tables.Tag](ctx, ps.db, "tags", req.Tags, ve); err != nil {
		return err
	}

	if uploads != nil {
		check := func(field string, fh *multipart.FileHeader) {
			if fh == nil {
				return
			}
			if err := ps.storage.ValidateImage(field, fh); err != nil {
				if fe, ok := err.(*lib.ValidationError); ok {
					ve.Errors = append(ve.Errors, fe.Errors...)
				}
			}
		}
		check("featuredImage", uploads.Featured)
		for i, fh := range uploads.Gallery {
			check(fmt.Sprintf("gallery.%d", i), fh)
		}
		for i, fh := range uploads.Variants {
			check(fmt.Sprintf("variants.%d.image", i), fh)
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// missingReferences adds a field error for every id of T that does not exist
func missingReferences[T any](ctx context.Context, db bun.IDB, field string, ids []int64, ve *lib.ValidationError) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := database.Pluck[T, int64](ctx, database.Query[T](db).WhereIn("id", lo.Uniq(ids)), "id")
	if err != nil {
		return lib.MapDBError(err)
	}
	for i, id := range ids {
		if !lo.Contains(found, id) {
			key := fmt.Sprintf("%s.%d", field, i)
			ve.Add(key, fmt.Sprintf("The selected %s is invalid.", key))
		}
	}
	return nil
}

// productWriter runs the write steps inside one transaction and remembers
// which files it stored or made obsolete
type productWriter struct {
	logger   *gecho.Logger
	storage  *StorageService
	tx       bun.Tx
	stored   []string
	obsolete []string
}

func (w *productWriter) slugExists(ctx context.Context, candidate string) (bool, error) {
	return database.Query[tables.Product](w.tx).Where("slug", candidate).Exists(ctx)
}

// skuExists checks products and variants
func (w *productWriter) skuExists(ctx context.Context, candidate string) (bool, error) {
	taken, err := database.Query[tables.Product](w.tx).Where("sku", candidate).Exists(ctx)
	if err != nil || taken {
		return taken, err
	}
	return database.Query[tables.ProductVariant](w.tx).Where("sku", candidate).Exists(ctx)
}

func (w *productWriter) store(fh *multipart.FileHeader) (string, error) {
	path, err := w.storage.StoreImage(fh)
	if err != nil {
		return "", err
	}
	w.stored = append(w.stored, path)
	return path, nil
}

func (w *productWriter) create(ctx context.Context, req *structs.ProductRequest, uploads *ProductUploads) (int64, error) {
	productSlug, err := lib.UniqueSlug(ctx, slugOrDefault(req.Slug, req.Name), w.slugExists)
	if err != nil {
		return 0, err
	}
	sku, err := lib.UniqueSKU(ctx, req.SKU, w.skuExists)
	if err != nil {
		return 0, err
	}

	product := &tables.Product{SKU: sku, Slug: productSlug}
	applyProductFields(product, req)

	if _, err := database.Query[tables.Product](w.tx).Insert(ctx, product); err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}

	// categories are attached, tags are synced
	if err := w.attachCategories(ctx, product.ID, req.Categories); err != nil {
		return 0, err
	}
	if err := w.syncTags(ctx, product.ID, req.Tags); err != nil {
		return 0, err
	}

	if err := w.addUploadedImages(ctx, product.Owner(), uploads); err != nil {
		return 0, err
	}

	for i := range req.Variants {
		if err := w.createVariant(ctx, product.ID, &req.Variants[i], uploads.variant(i)); err != nil {
			return 0, fmt.Errorf("failed to create variant %d: %w", i, err)
		}
	}

	return product.ID, nil
}

func (w *productWriter) update(ctx context.Context, id int64, req *structs.ProductRequest, uploads *ProductUploads) error {
	product, err := database.Query[tables.Product](w.tx).Where("id", id).ForUpdate().First(ctx)
	if err != nil {
		return err
	}
	if product == nil {
		return lib.ErrNotFound
	}

	if req.SKU != nil && strings.TrimSpace(*req.SKU) != "" {
		product.SKU = *req.SKU
	}
	product.Slug = slugOrDefault(req.Slug, req.Name)
	applyProductFields(product, req)

	_, err = w.tx.NewUpdate().Model(product).
		Column("name", "price", "sale_price", "sku", "stock", "slug", "description",
			"product_type", "product_status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if err := w.syncCategories(ctx, product.ID, req.Categories); err != nil {
		return err
	}
	if err := w.syncTags(ctx, product.ID, req.Tags); err != nil {
		return err
	}

	if uploads != nil && uploads.Featured != nil {
		if err := w.replaceFeatured(ctx, product.Owner(), uploads.Featured); err != nil {
			return err
		}
	}

	if err := w.reconcileGallery(ctx, product.Owner(), req.ExistingGalleryImages, req.RemovedImages); err != nil {
		return err
	}
	if uploads != nil {
		for _, fh := range uploads.Gallery {
			if err := w.addImage(ctx, product.Owner(), fh, false); err != nil {
				return err
			}
		}
	}

	for i := range req.Variants {
		if err := w.upsertVariant(ctx, product.ID, &req.Variants[i], uploads.variant(i)); err != nil {
			return fmt.Errorf("failed to save variant %d: %w", i, err)
		}
	}
	return nil
}

func (u *ProductUploads) variant(i int) *multipart.FileHeader {
	if u == nil || u.Variants == nil {
		return nil
	}
	return u.Variants[i]
}

// applyProductFields copies the plain columns; absent stock becomes 0 and
// absent sale price and description become NULL
func applyProductFields(product *tables.Product, req *structs.ProductRequest) {
	product.Name = req.Name
	product.Price = *req.Price
	product.SalePrice = nullDecimal(req.SalePrice)
	product.Stock = lo.FromPtr(req.Stock)
	product.Description = req.Description
	product.ProductType = req.ProductType
	product.ProductStatus = req.ProductStatus
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func (w *productWriter) attachCategories(ctx context.Context, productID int64, ids []int64) error {
	rows := lo.Map(lo.Uniq(ids), func(id int64, _ int) tables.CategoryProduct {
		return tables.CategoryProduct{ProductID: productID, CategoryID: id}
	})
	if _, err := database.Query[tables.CategoryProduct](w.tx).InsertMany(ctx, rows); err != nil {
		return fmt.Errorf("failed to attach categories: %w", err)
	}
	return nil
}

func (w *productWriter) syncCategories(ctx context.Context, productID int64, ids []int64) error {
	if _, err := database.Query[tables.CategoryProduct](w.tx).Where("product_id", productID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to detach categories: %w", err)
	}
	return w.attachCategories(ctx, productID, ids)
}

func (w *productWriter) syncTags(ctx context.Context, productID int64, ids []int64) error {
	if _, err := database.Query[tables.ProductTag](w.tx).Where("product_id", productID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to detach tags: %w", err)
	}
	rows := lo.Map(lo.Uniq(ids), func(id int64, _ int) tables.ProductTag {
		return tables.ProductTag{ProductID: productID, TagID: id}
	})
	if _, err := database.Query[tables.ProductTag](w.tx).InsertMany(ctx, rows); err != nil {
		return fmt.Errorf("failed to attach tags: %w", err)
	}
	return nil
}

func (w *productWriter) addImage(ctx context.Context, owner tables.ImageOwner, fh *multipart.FileHeader, featured bool) error {
	path, err := w.store(fh)
	if err != nil {
		return err
	}
	if err := attachImage(ctx, w.tx, owner, path, featured); err != nil {
		return fmt.Errorf("failed to record image: %w", err)
	}
	return nil
}

func (w *productWriter) addUploadedImages(ctx context.Context, owner tables.ImageOwner, uploads *ProductUploads) error {
	if uploads == nil {
		return nil
	}
	if uploads.Featured != nil {
		if err := w.addImage(ctx, owner, uploads.Featured, true); err != nil {
			return err
		}
	}
	for _, fh := range uploads.Gallery {
		if err := w.addImage(ctx, owner, fh, false); err != nil {
			return err
		}
	}
	return nil
}

// replaceFeatured drops every featured image of the owner before adding the new one
func (w *productWriter) replaceFeatured(ctx context.Context, owner tables.ImageOwner, fh *multipart.FileHeader) error {
	existing, err := imagesOf(ctx, w.tx, owner)
	if err != nil {
		return err
	}
	featured := lo.Filter(existing, func(img tables.Image, _ int) bool { return img.IsFeatured })
	if err := w.dropImages(ctx, featured); err != nil {
		return err
	}
	return w.addImage(ctx, owner, fh, true)
}

func (w *productWriter) reconcileGallery(ctx context.Context, owner tables.ImageOwner, keep, removed []string) error {
	existing, err := imagesOf(ctx, w.tx, owner)
	if err != nil {
		return err
	}

	deleteIDs, createPaths := planGallery(existing, keep, removed)
	doomed := lo.Filter(existing, func(img tables.Image, _ int) bool { return lo.Contains(deleteIDs, img.ID) })
	if err := w.dropImages(ctx, doomed); err != nil {
		return err
	}

	for _, path := range createPaths {
		if err := attachImage(ctx, w.tx, owner, path, false); err != nil {
			return fmt.Errorf("failed to record gallery image: %w", err)
		}
	}
	return nil
}

func (w *productWriter) dropImages(ctx context.Context, images []tables.Image) error {
	if len(images) == 0 {
		return nil
	}
	ids := lo.Map(images, func(img tables.Image, _ int) int64 { return img.ID })
	if err := deleteImages(ctx, w.tx, ids); err != nil {
		return fmt.Errorf("failed to delete images: %w", err)
	}
	w.obsolete = append(w.obsolete, lo.Map(images, func(img tables.Image, _ int) string { return img.ImagePath })...)
	return nil
}

func (w *productWriter) createVariant(ctx context.Context, productID int64, req *structs.VariantRequest, image *multipart.FileHeader) error {
	sku, err := lib.UniqueSKU(ctx, req.SKU, w.skuExists)
	if err != nil {
		return err
	}

	variant := &tables.ProductVariant{ProductID: productID, SKU: sku}
	applyVariantFields(variant, req)
	if _, err := database.Query[tables.ProductVariant](w.tx).Insert(ctx, variant); err != nil {
		return err
	}

	if err := w.syncVariantAttributes(ctx, variant.ID, req.Attributes); err != nil {
		return err
	}
	if image != nil {
		return w.addImage(ctx, variant.Owner(), image, false)
	}
	return nil
}

// upsertVariant updates the variant matching (id, product) or creates a new one.
// A supplied image replaces every existing image of the variant.
func (w *productWriter) upsertVariant(ctx context.Context, productID int64, req *structs.VariantRequest, image *multipart.FileHeader) error {
	var existing *tables.ProductVariant
	if req.ID != nil {
		var err error
		existing, err = database.Query[tables.ProductVariant](w.tx).
			Where("id", *req.ID).
			Where("product_id", productID).
			First(ctx)
		if err != nil {
			return err
		}
	}
	if existing == nil {
		return w.createVariant(ctx, productID, req, image)
	}

	if req.SKU != nil && strings.TrimSpace(*req.SKU) != "" {
		existing.SKU = *req.SKU
	}
	applyVariantFields(existing, req)
	_, err := w.tx.NewUpdate().Model(existing).
		Column("price", "sale_price", "sku", "stock", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}

	if err := w.syncVariantAttributes(ctx, existing.ID, req.Attributes); err != nil {
		return err
	}

	if image != nil {
		current, err := imagesOf(ctx, w.tx, existing.Owner())
		if err != nil {
			return err
		}
		if err := w.dropImages(ctx, current); err != nil {
			return err
		}
		return w.addImage(ctx, existing.Owner(), image, false)
	}
	return nil
}

func applyVariantFields(variant *tables.ProductVariant, req *structs.VariantRequest) {
	variant.Price = lo.FromPtrOr(req.Price, decimal.Zero)
	variant.SalePrice = nullDecimal(req.SalePrice)
	variant.Stock = lo.FromPtr(req.Stock)
}

// syncVariantAttributes replaces the variant's attribute values with the
// resolvable (name, value) pairs. Pairs that match nothing are skipped.
func (w *productWriter) syncVariantAttributes(ctx context.Context, variantID int64, pairs map[string]string) error {
	if _, err := database.Query[tables.VariantAttribute](w.tx).Where("variant_id", variantID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to detach attribute values: %w", err)
	}

	var ids []int64
	for name, value := range pairs {
		id, ok, err := resolveAttributeValue(ctx, w.tx, name, value)
		if err != nil {
			return fmt.Errorf("failed to resolve attribute %q: %w", name, err)
		}
		if !ok {
			w.logger.Debug("Skipping unknown attribute value",
				gecho.Field("attribute", name),
				gecho.Field("value", value),
				gecho.Field("variant_id", variantID),
			)
			continue
		}
		ids = append(ids, id)
	}

	rows := lo.Map(lo.Uniq(ids), func(id int64, _ int) tables.VariantAttribute {
		return tables.VariantAttribute{VariantID: variantID, AttributeValueID: id}
	})
	if _, err := database.Query[tables.VariantAttribute](w.tx).InsertMany(ctx, rows); err != nil {
		return fmt.Errorf("failed to attach attribute values: %w", err)
	}
	return nil
}
