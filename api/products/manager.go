package products

import (
	"context"
	"shop_admin_server/services"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type productStore interface {
	List(ctx context.Context, opts *services.ProductListOptions) ([]tables.Product, error)
	Get(ctx context.Context, id int64) (*tables.Product, error)
	Create(ctx context.Context, req *structs.ProductRequest, uploads *services.ProductUploads) (*tables.Product, error)
	Update(ctx context.Context, id int64, req *structs.ProductRequest, uploads *services.ProductUploads) (*tables.Product, error)
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int, error)
}

type ProductRoutesManager struct {
	logger         *gecho.Logger
	productService productStore
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService productStore,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		productService: productService,
	}
}

// RegisterRoutes mounts the product routes; the caller applies the admin gate
func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", prm.ListProducts)
		r.Post("/", prm.CreateProduct)
		r.Post("/bulkDelete", prm.BulkDeleteProducts)
		r.Get("/{id}", prm.GetProduct)
		r.Put("/{id}", prm.UpdateProduct)
		r.Delete("/{id}", prm.DeleteProduct)
	})
}
