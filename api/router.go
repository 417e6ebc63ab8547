package api

import (
	"net/http"
	"shop_admin_server/api/middleware"
	"shop_admin_server/services"
	"shop_admin_server/structs"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

// App builds the HTTP handler. mwLogger is used for request logging,
// logger for everything else.
func App(cfg *structs.Config, mwLogger, logger *gecho.Logger, sm *services.ServiceManager) chi.Router {
	r := chi.NewRouter()

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, sm.AuthService, sm.CacheService)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(gecho.Handlers.CreateLoggingMiddleware(mwLogger))
	r.Use(middleware.MetricsMiddleware)

	// CORS (must be before auth)
	r.Use(mw.SetupCORS().Handler)

	// Register all routes
	NewRouterManager(logger, sm, cfg, mw).RegisterRoutes(r)

	// Public file area holding uploaded images
	prefix := "/" + strings.Trim(cfg.Storage.URLPrefix, "/")
	r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Storage.PublicRoot))))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the "+cfg.Server.AppName+" API"),
			gecho.Send(),
		)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
