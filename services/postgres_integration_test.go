package services

import (
	"context"
	"database/sql"
	"mime/multipart"
	"os"
	"path/filepath"
	"shop_admin_server/database"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/driver/pgdriver"
)

// newPostgres connects to TEST_DATABASE_DSN, migrates and empties every table.
// Tests using it are skipped when the variable is unset.
func newPostgres(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db := database.Wrap(sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn))))
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db, testLogger()))
	_, err := db.ExecContext(ctx, `TRUNCATE users, categories, tags, attributes, attribute_values,
		products, product_variants, category_product, product_tag, variant_attributes, images, orders
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return db
}

func newPostgresProducts(t *testing.T, db *database.DB) (*ProductService, string) {
	t.Helper()
	root := t.TempDir()
	storage := NewStorageService(testLogger(), &structs.StorageConfig{
		PublicRoot:  root,
		URLPrefix:   "/storage",
		MaxUploadKB: 1024,
	})
	return NewProductService(testLogger(), db, storage), root
}

func productRequest(name string) *structs.ProductRequest {
	return &structs.ProductRequest{
		Name:          name,
		Price:         lo.ToPtr(decimal.NewFromInt(10)),
		ProductType:   "simple",
		ProductStatus: "active",
	}
}

func TestCreateAttachesOnlyKnownAttributePairs(t *testing.T) {
	db := newPostgres(t)
	ps, _ := newPostgresProducts(t, db)
	ctx := context.Background()

	size, err := database.Query[tables.Attribute](db).Insert(ctx, &tables.Attribute{Name: "Size", Slug: "size"})
	require.NoError(t, err)
	medium, err := database.Query[tables.AttributeValue](db).Insert(ctx, &tables.AttributeValue{AttributeID: size.ID, Value: "M"})
	require.NoError(t, err)

	req := productRequest("Hat")
	req.Variants = []structs.VariantRequest{
		{Attributes: map[string]string{"Size": "M", "Colour": "Plum"}},
		{Attributes: map[string]string{"Size": "XXL"}},
	}
	product, err := ps.Create(ctx, req, nil)
	require.NoError(t, err)

	require.Len(t, product.Variants, 2)
	require.Len(t, product.Variants[0].Attributes, 1)
	require.Equal(t, medium.ID, product.Variants[0].Attributes[0].ID)
	require.Empty(t, product.Variants[1].Attributes)
}

func TestCreateSuffixesTakenIdentifiers(t *testing.T) {
	db := newPostgres(t)
	ps, _ := newPostgresProducts(t, db)
	ctx := context.Background()

	first := productRequest("Hat")
	first.SKU = lo.ToPtr("HAT")
	first.Variants = []structs.VariantRequest{{SKU: lo.ToPtr("HAT-RED")}}
	hat, err := ps.Create(ctx, first, nil)
	require.NoError(t, err)
	require.Equal(t, "hat", hat.Slug)
	require.Equal(t, "HAT", hat.SKU)

	// skus are unique across products and variants
	second := productRequest("Hat")
	second.SKU = lo.ToPtr("HAT-RED")
	second.Variants = []structs.VariantRequest{{SKU: lo.ToPtr("HAT")}}
	other, err := ps.Create(ctx, second, nil)
	require.NoError(t, err)
	require.Equal(t, "hat-1", other.Slug)
	require.Equal(t, "HAT-RED-1", other.SKU)
	require.Len(t, other.Variants, 1)
	require.Equal(t, "HAT-1", other.Variants[0].SKU)
}

func TestDuplicateSlugIsConflict(t *testing.T) {
	db := newPostgres(t)
	ps, _ := newPostgresProducts(t, db)
	ctx := context.Background()

	_, err := ps.Create(ctx, productRequest("Hat"), nil)
	require.NoError(t, err)

	_, err = database.Query[tables.Product](db).Insert(ctx, &tables.Product{
		Name:          "Hat",
		Price:         decimal.NewFromInt(5),
		SKU:           "OTHER",
		Slug:          "hat",
		ProductType:   "simple",
		ProductStatus: "active",
	})
	require.Error(t, err)
	require.True(t, lib.IsConflict(lib.MapDBError(err)))
}

func TestUpdateWithEmptyGalleryKeepsFeatured(t *testing.T) {
	db := newPostgres(t)
	ps, root := newPostgresProducts(t, db)
	ctx := context.Background()

	product, err := ps.Create(ctx, productRequest("Hat"), &ProductUploads{
		Featured: fileHeader(t, "featuredImage", "front.png", pngHeader),
		Gallery: []*multipart.FileHeader{
			fileHeader(t, "gallery[]", "side.png", pngHeader),
			fileHeader(t, "gallery[]", "back.png", pngHeader),
		},
	})
	require.NoError(t, err)
	require.Len(t, product.Images, 3)
	gallery := lo.Filter(product.Images, func(img tables.Image, _ int) bool { return !img.IsFeatured })
	require.Len(t, gallery, 2)

	req := productRequest("Hat")
	req.ExistingGalleryImages = []string{}
	updated, err := ps.Update(ctx, product.ID, req, nil)
	require.NoError(t, err)

	require.Len(t, updated.Images, 1)
	require.True(t, updated.Images[0].IsFeatured)
	for _, img := range gallery {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(img.ImagePath)))
		require.True(t, os.IsNotExist(err), "%s should be removed", img.ImagePath)
	}
}

func TestListPagesThroughProducts(t *testing.T) {
	db := newPostgres(t)
	ps, _ := newPostgresProducts(t, db)
	ctx := context.Background()

	for _, name := range []string{"Cap", "Beanie", "Apron"} {
		_, err := ps.Create(ctx, productRequest(name), nil)
		require.NoError(t, err)
	}

	page, err := ps.List(ctx, &ProductListOptions{SortBy: "name", Limit: lo.ToPtr(2), Offset: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"Beanie", "Cap"}, lo.Map(page, func(p tables.Product, _ int) string { return p.Name }))

	all, err := ps.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	_, err = ps.List(ctx, &ProductListOptions{Limit: lo.ToPtr(0)})
	var ve *lib.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, []string{"The limit field must be at least 1."}, ve.Fields()["limit"])
}

func TestAuthAgainstPostgres(t *testing.T) {
	db := newPostgres(t)
	ctx := context.Background()

	users := NewUserService(testLogger(), db)
	cfg := &structs.Config{Auth: &structs.AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		BlacklistCacheTTL: time.Hour,
	}}
	as := NewAuthService(cfg, testLogger(), db, &fakeTokenStore{revoked: map[uuid.UUID]time.Time{}}, users)

	admin, err := as.Register(ctx, &structs.RegisterRequest{
		Name:     "Admin",
		Email:    "admin@example.com",
		Role:     lo.ToPtr(tables.RoleAdministrator),
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = as.Register(ctx, &structs.RegisterRequest{Name: "Again", Email: "admin@example.com", Password: "correct horse"})
	var ve *lib.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields(), "email")

	_, token, err := as.Login(ctx, &structs.AuthRequest{Email: "admin@example.com", Password: "correct horse"})
	require.NoError(t, err)

	claims, err := as.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, admin.Id, claims.Sub)

	require.NoError(t, users.Delete(ctx, admin.Id))
	_, err = as.Authenticate(ctx, token)
	require.ErrorIs(t, err, lib.ErrRevokedToken)
}
