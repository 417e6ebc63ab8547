package middleware

import (
	"context"
	"shop_admin_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
)

// tokenAuthenticator validates bearer tokens, including revocation
type tokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*structs.AuthClaims, error)
}

// rateCounter counts requests per client and endpoint
type rateCounter interface {
	IncrementRateLimit(ctx context.Context, ip, endpoint string, window time.Duration) (int, error)
}

type Middleware struct {
	logger  *gecho.Logger
	cfg     *structs.Config
	auth    tokenAuthenticator
	limiter rateCounter
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, auth tokenAuthenticator, limiter rateCounter) *Middleware {
	return &Middleware{
		logger:  logger,
		cfg:     cfg,
		auth:    auth,
		limiter: limiter,
	}
}
