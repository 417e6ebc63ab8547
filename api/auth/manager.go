package auth

import (
	"context"
	"shop_admin_server/api/middleware"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type authenticator interface {
	Login(ctx context.Context, req *structs.AuthRequest) (*tables.User, string, error)
	Register(ctx context.Context, req *structs.RegisterRequest) (*tables.User, error)
	Logout(ctx context.Context, claims *structs.AuthClaims) error
}

type AuthRoutesManager struct {
	logger      *gecho.Logger
	authService authenticator
	cfg         *structs.Config
	mw          *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	authService authenticator,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:      logger,
		authService: authService,
		cfg:         cfg,
		mw:          mw,
	}
}

func (arm *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	// Throttled public routes
	r.Group(func(r chi.Router) {
		r.Use(arm.mw.RateLimitMiddleware(arm.cfg.Auth.RateLimit, arm.cfg.Auth.RateWindow))
		r.Post("/register", arm.HandleRegister)
		r.Post("/login", arm.HandleLogin)
	})

	// Browsers bounced to the login page land here
	r.Get("/login", arm.HandleLoginRedirect)

	r.Group(func(r chi.Router) {
		r.Use(arm.mw.UserAuthMiddleware)
		r.Post("/logout", arm.HandleLogout)
	})
}
