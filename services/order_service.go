package services

import (
	"context"
	"shop_admin_server/database"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

type OrderService struct {
	logger *gecho.Logger
	db     bun.IDB
}

func NewOrderService(logger *gecho.Logger, db bun.IDB) *OrderService {
	return &OrderService{logger: logger, db: db}
}

// List returns every order, newest first
func (os *OrderService) List(ctx context.Context) ([]tables.Order, error) {
	orders, err := database.Query[tables.Order](os.db).
		OrderBy("created_at", database.DESC).
		OrderBy("id", database.DESC).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	return orders, nil
}

// Create stores a pending order for an existing user
func (os *OrderService) Create(ctx context.Context, req *structs.CreateOrderRequest) (*tables.Order, error) {
	userExists, err := database.Query[tables.User](os.db).Where("id", req.UserID).Exists(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if !userExists {
		return nil, lib.NewFieldError("user_id", "The selected user id is invalid.")
	}

	order := &tables.Order{
		UserID:      req.UserID,
		TotalAmount: *req.TotalAmount,
		Status:      tables.OrderStatusPending,
	}
	if _, err := database.Query[tables.Order](os.db).Insert(ctx, order); err != nil {
		os.logger.Error("Failed to create order", gecho.Field("error", err), gecho.Field("user_id", req.UserID))
		return nil, lib.MapDBError(err)
	}

	os.logger.Info("Order created", gecho.Field("order_id", order.ID), gecho.Field("user_id", order.UserID))
	return order, nil
}

func (os *OrderService) Get(ctx context.Context, id int64) (*tables.Order, error) {
	order, err := database.FindByID[tables.Order](ctx, os.db, id)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}
	return order, nil
}

// Update changes the status and/or total when supplied
func (os *OrderService) Update(ctx context.Context, id int64, req *structs.UpdateOrderRequest) (*tables.Order, error) {
	order, err := os.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	order.UpdatedAt = time.Now()
	values := map[string]any{"updated_at": order.UpdatedAt}
	if req.Status != nil {
		order.Status = *req.Status
		values["status"] = order.Status
	}
	if req.TotalAmount != nil {
		order.TotalAmount = *req.TotalAmount
		values["total_amount"] = order.TotalAmount
	}

	if _, err := database.Query[tables.Order](os.db).Where("id", id).Update(ctx, values); err != nil {
		os.logger.Error("Failed to update order", gecho.Field("error", err), gecho.Field("order_id", id))
		return nil, lib.MapDBError(err)
	}
	return order, nil
}

func (os *OrderService) Delete(ctx context.Context, id int64) error {
	affected, err := database.DeleteByID[tables.Order](ctx, os.db, id)
	if err != nil {
		return lib.MapDBError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	os.logger.Info("Order deleted", gecho.Field("order_id", id))
	return nil
}
