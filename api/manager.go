package api

import (
	"shop_admin_server/api/auth"
	"shop_admin_server/api/catalog"
	"shop_admin_server/api/health"
	"shop_admin_server/api/middleware"
	"shop_admin_server/api/orders"
	"shop_admin_server/api/products"
	"shop_admin_server/api/users"
	"shop_admin_server/services"
	"shop_admin_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	mw            *middleware.Middleware
	healthRoutes  *health.HealthRoutesManager
	authRoutes    *auth.AuthRoutesManager
	userRoutes    *users.UserRoutesManager
	productRoutes *products.ProductRoutesManager
	catalogRoutes *catalog.CatalogRoutesManager
	orderRoutes   *orders.OrderRoutesManager
}

func NewRouterManager(logger *gecho.Logger, sm *services.ServiceManager, cfg *structs.Config, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		mw:            mw,
		healthRoutes:  health.NewHealthRoutesManager(logger, sm.HealthService),
		authRoutes:    auth.NewAuthRoutesManager(logger, sm.AuthService, cfg, mw),
		userRoutes:    users.NewUserRoutesManager(logger, sm.UserService),
		productRoutes: products.NewProductRoutesManager(logger, sm.ProductService),
		catalogRoutes: catalog.NewCatalogRoutesManager(logger, sm.CategoryService, sm.TagService, sm.AttributeService, sm.AttributeValueService),
		orderRoutes:   orders.NewOrderRoutesManager(logger, sm.OrderService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)

	// Everything else is for administrators only
	r.Group(func(r chi.Router) {
		r.Use(rm.mw.UserAuthMiddleware)
		r.Use(rm.mw.AdminAuthMiddleware)

		rm.userRoutes.RegisterRoutes(r)
		rm.productRoutes.RegisterRoutes(r)
		rm.catalogRoutes.RegisterRoutes(r)
		rm.orderRoutes.RegisterRoutes(r)
	})
}
