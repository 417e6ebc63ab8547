package auth

import (
	"net/http"
	"shop_admin_server/api/middleware"
	"shop_admin_server/handling"
	"shop_admin_server/lib"
)

func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		middleware.Unauthenticated(w)
		return
	}

	if err := arm.authService.Logout(r.Context(), claims); err != nil {
		handling.HandleError(err, "Failed to logout", arm.logger, w)
		return
	}

	lib.Message(w, http.StatusOK, "Logged out successfully")
}
