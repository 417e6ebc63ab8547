package catalog

import (
	"context"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// taxonomyStore is the CRUD surface shared by categories, tags and attributes
type taxonomyStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, req *structs.TaxonomyRequest) (*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, id int64, req *structs.TaxonomyRequest) (*T, error)
	Delete(ctx context.Context, id int64) error
}

type valueStore interface {
	List(ctx context.Context, attributeID int64) ([]tables.AttributeValue, error)
	Create(ctx context.Context, attributeID int64, req *structs.AttributeValueRequest) (*tables.AttributeValue, error)
	Get(ctx context.Context, attributeID, valueID int64) (*tables.AttributeValue, error)
	Update(ctx context.Context, attributeID, valueID int64, req *structs.AttributeValueRequest) (*tables.AttributeValue, error)
	Delete(ctx context.Context, attributeID, valueID int64) error
}

type CatalogRoutesManager struct {
	logger     *gecho.Logger
	categories *taxonomyRoutes[tables.Category]
	tags       *taxonomyRoutes[tables.Tag]
	attributes *taxonomyRoutes[tables.Attribute]
	values     valueStore
}

func NewCatalogRoutesManager(
	logger *gecho.Logger,
	categoryService taxonomyStore[tables.Category],
	tagService taxonomyStore[tables.Tag],
	attributeService taxonomyStore[tables.Attribute],
	valueService valueStore,
) *CatalogRoutesManager {
	return &CatalogRoutesManager{
		logger:     logger,
		categories: &taxonomyRoutes[tables.Category]{logger: logger, store: categoryService, entity: "Category"},
		tags:       &taxonomyRoutes[tables.Tag]{logger: logger, store: tagService, entity: "Tag"},
		attributes: &taxonomyRoutes[tables.Attribute]{logger: logger, store: attributeService, entity: "Attribute"},
		values:     valueService,
	}
}

// RegisterRoutes mounts the taxonomy routes; the caller applies the admin gate
func (crm *CatalogRoutesManager) RegisterRoutes(r chi.Router) {
	crm.categories.mount(r, "/categories")
	crm.tags.mount(r, "/tags")
	crm.attributes.mount(r, "/attributes")

	r.Get("/attributes/{attributeId}/values", crm.ListValues)
	r.Post("/attributes/{attributeId}/values", crm.CreateValue)
	r.Get("/attributes/{attributeId}/values/{valueId}", crm.GetValue)
	r.Put("/attributes/{attributeId}/values/{valueId}", crm.UpdateValue)
	r.Delete("/attributes/{attributeId}/values/{valueId}", crm.DeleteValue)
}
