package orders

import (
	"context"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type orderStore interface {
	List(ctx context.Context) ([]tables.Order, error)
	Create(ctx context.Context, req *structs.CreateOrderRequest) (*tables.Order, error)
	Get(ctx context.Context, id int64) (*tables.Order, error)
	Update(ctx context.Context, id int64, req *structs.UpdateOrderRequest) (*tables.Order, error)
	Delete(ctx context.Context, id int64) error
}

type OrderRoutesManager struct {
	logger       *gecho.Logger
	orderService orderStore
}

func NewOrderRoutesManager(logger *gecho.Logger, orderService orderStore) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:       logger,
		orderService: orderService,
	}
}

// RegisterRoutes mounts the order routes; the caller applies the admin gate
func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", orm.ListOrders)
		r.Post("/", orm.CreateOrder)
		r.Get("/{id}", orm.GetOrder)
		r.Put("/{id}", orm.UpdateOrder)
		r.Delete("/{id}", orm.DeleteOrder)
	})
}
