package services

import (
	"context"
	"database/sql"
	"errors"
	"shop_admin_server/database"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

// AttributeValueService manages the values nested under one attribute
type AttributeValueService struct {
	logger *gecho.Logger
	db     bun.IDB
}

func NewAttributeValueService(logger *gecho.Logger, db bun.IDB) *AttributeValueService {
	return &AttributeValueService{logger: logger, db: db}
}

func (s *AttributeValueService) requireAttribute(ctx context.Context, attributeID int64) error {
	exists, err := database.Query[tables.Attribute](s.db).Where("id", attributeID).Exists(ctx)
	if err != nil {
		return lib.MapDBError(err)
	}
	if !exists {
		return lib.ErrNotFound
	}
	return nil
}

func (s *AttributeValueService) List(ctx context.Context, attributeID int64) ([]tables.AttributeValue, error) {
	if err := s.requireAttribute(ctx, attributeID); err != nil {
		return nil, err
	}
	values, err := database.Query[tables.AttributeValue](s.db).
		Where("attribute_id", attributeID).
		OrderBy("id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	return values, nil
}

func (s *AttributeValueService) Create(ctx context.Context, attributeID int64, req *structs.AttributeValueRequest) (*tables.AttributeValue, error) {
	if err := s.requireAttribute(ctx, attributeID); err != nil {
		return nil, err
	}
	value := &tables.AttributeValue{AttributeID: attributeID, Value: req.Value}
	if _, err := database.Query[tables.AttributeValue](s.db).Insert(ctx, value); err != nil {
		s.logger.Error("Failed to create attribute value", gecho.Field("error", err), gecho.Field("attribute_id", attributeID))
		return nil, lib.MapDBError(err)
	}
	return value, nil
}

func (s *AttributeValueService) Get(ctx context.Context, attributeID, valueID int64) (*tables.AttributeValue, error) {
	if err := s.requireAttribute(ctx, attributeID); err != nil {
		return nil, err
	}
	value, err := database.Query[tables.AttributeValue](s.db).
		Where("id", valueID).
		Where("attribute_id", attributeID).
		First(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if value == nil {
		return nil, lib.ErrNotFound
	}
	return value, nil
}

func (s *AttributeValueService) Update(ctx context.Context, attributeID, valueID int64, req *structs.AttributeValueRequest) (*tables.AttributeValue, error) {
	value, err := s.Get(ctx, attributeID, valueID)
	if err != nil {
		return nil, err
	}
	value.Value = req.Value
	if _, err := s.db.NewUpdate().Model(value).Column("value").WherePK().Exec(ctx); err != nil {
		return nil, lib.MapDBError(err)
	}
	return value, nil
}

func (s *AttributeValueService) Delete(ctx context.Context, attributeID, valueID int64) error {
	if _, err := s.Get(ctx, attributeID, valueID); err != nil {
		return err
	}
	if _, err := database.DeleteByID[tables.AttributeValue](ctx, s.db, valueID); err != nil {
		return lib.MapDBError(err)
	}
	s.logger.Info("Deleted attribute value", gecho.Field("id", valueID), gecho.Field("attribute_id", attributeID))
	return nil
}

// resolveAttributeValue looks up the value id for an (attribute name, value)
// pair. ok is false when either side does not exist.
func resolveAttributeValue(ctx context.Context, db bun.IDB, name, value string) (id int64, ok bool, err error) {
	err = db.NewSelect().
		Model((*tables.AttributeValue)(nil)).
		Column("av.id").
		Join("JOIN attributes AS a ON a.id = av.attribute_id").
		Where("a.name = ?", name).
		Where("av.value = ?", value).
		Limit(1).
		Scan(ctx, &id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
