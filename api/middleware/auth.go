package middleware

import (
	"context"
	"errors"
	"net/http"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// Context keys for storing user data in request context
type contextKey string

const ClaimsContextKey contextKey = "claims"

const (
	UnauthenticatedMessage  = "Unauthenticated. Please login first"
	NotAdministratorMessage = "Access denied: User is not an administrator"
)

// Unauthenticated writes the 401 body shared by the auth gate and GET /login
func Unauthenticated(w http.ResponseWriter) {
	lib.JSON(w, http.StatusUnauthorized, map[string]any{
		"status":  false,
		"message": UnauthenticatedMessage,
	})
}

func isTokenError(err error) bool {
	return errors.Is(err, lib.ErrMissingToken) ||
		errors.Is(err, lib.ErrInvalidToken) ||
		errors.Is(err, lib.ErrExpiredToken) ||
		errors.Is(err, lib.ErrRevokedToken)
}

// UserAuthMiddleware requires a valid, unrevoked bearer token
func (mw *Middleware) UserAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := lib.BearerToken(r)
		if err != nil {
			Unauthenticated(w)
			return
		}

		claims, err := mw.auth.Authenticate(r.Context(), token)
		if err != nil {
			if isTokenError(err) {
				mw.logger.Debug("Rejected bearer token", gecho.Field("error", err))
				Unauthenticated(w)
				return
			}
			mw.logger.Error("Failed to authenticate request", gecho.Field("error", err))
			gecho.ServiceUnavailable(w, gecho.WithMessage("Authentication is temporarily unavailable"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuthMiddleware protects routes to only admin users
// Must be used after UserAuthMiddleware
func (mw *Middleware) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaimsFromContext(r.Context())
		if !ok {
			Unauthenticated(w)
			return
		}

		if claims.Role != tables.RoleAdministrator {
			mw.logger.Warn("Non-admin user attempted to access admin route", gecho.Field("user_id", claims.Sub), gecho.Field("role", claims.Role))
			lib.Message(w, http.StatusForbidden, NotAdministratorMessage)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetClaimsFromContext is a helper function to extract the claims from request context
func GetClaimsFromContext(ctx context.Context) (*structs.AuthClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	return claims, ok
}
