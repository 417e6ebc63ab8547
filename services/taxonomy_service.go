package services

import (
	"context"
	"shop_admin_server/database"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

// NamedModel is a catalog table with a display name and a slug
type NamedModel[T any] interface {
	*T
	Rename(name string)
	SetSlug(slug string)
}

// TaxonomyService provides CRUD for categories, tags and attributes
type TaxonomyService[T any, PT NamedModel[T]] struct {
	logger        *gecho.Logger
	db            bun.IDB
	entity        string
	listRelations []string
}

type (
	CategoryService  = TaxonomyService[tables.Category, *tables.Category]
	TagService       = TaxonomyService[tables.Tag, *tables.Tag]
	AttributeService = TaxonomyService[tables.Attribute, *tables.Attribute]
)

func NewCategoryService(logger *gecho.Logger, db bun.IDB) *CategoryService {
	return &CategoryService{logger: logger, db: db, entity: "category"}
}

func NewTagService(logger *gecho.Logger, db bun.IDB) *TagService {
	return &TagService{logger: logger, db: db, entity: "tag"}
}

// NewAttributeService lists attributes together with their values
func NewAttributeService(logger *gecho.Logger, db bun.IDB) *AttributeService {
	return &AttributeService{logger: logger, db: db, entity: "attribute", listRelations: []string{"Values"}}
}

func (s *TaxonomyService[T, PT]) List(ctx context.Context) ([]T, error) {
	query := database.Query[T](s.db).OrderBy("id", database.ASC)
	for _, rel := range s.listRelations {
		query = query.Relation(rel)
	}
	items, err := query.All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	return items, nil
}

// Create stores a new record. The slug is derived from the name when absent.
func (s *TaxonomyService[T, PT]) Create(ctx context.Context, req *structs.TaxonomyRequest) (*T, error) {
	item := PT(new(T))
	item.Rename(req.Name)
	item.SetSlug(slugOrDefault(req.Slug, req.Name))

	if _, err := database.Query[T](s.db).Insert(ctx, (*T)(item)); err != nil {
		s.logger.Error("Failed to create "+s.entity, gecho.Field("error", err))
		return nil, lib.MapDBError(err)
	}
	return (*T)(item), nil
}

func (s *TaxonomyService[T, PT]) Get(ctx context.Context, id int64) (*T, error) {
	item, err := database.FindByID[T](ctx, s.db, id)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if item == nil {
		return nil, lib.ErrNotFound
	}
	return item, nil
}

// Update renames the record. The slug only changes when one is supplied.
func (s *TaxonomyService[T, PT]) Update(ctx context.Context, id int64, req *structs.TaxonomyRequest) (*T, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	PT(item).Rename(req.Name)
	columns := []string{"name", "updated_at"}
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		PT(item).SetSlug(*req.Slug)
		columns = append(columns, "slug")
	}

	if _, err := s.db.NewUpdate().Model(item).Column(columns...).WherePK().Exec(ctx); err != nil {
		s.logger.Error("Failed to update "+s.entity, gecho.Field("error", err), gecho.Field("id", id))
		return nil, lib.MapDBError(err)
	}
	return item, nil
}

func (s *TaxonomyService[T, PT]) Delete(ctx context.Context, id int64) error {
	affected, err := database.DeleteByID[T](ctx, s.db, id)
	if err != nil {
		return lib.MapDBError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	s.logger.Info("Deleted "+s.entity, gecho.Field("id", id))
	return nil
}

func slugOrDefault(given *string, name string) string {
	if given != nil && strings.TrimSpace(*given) != "" {
		return *given
	}
	return lib.Slugify(name)
}
