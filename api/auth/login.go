package auth

import (
	"errors"
	"net/http"
	"shop_admin_server/api/middleware"
	"shop_admin_server/handling"
	"shop_admin_server/lib"
	"shop_admin_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AuthRequest](r)
	if err != nil {
		arm.logger.Debug("Invalid login request", gecho.Field("error", err))
		handling.RespondError(err, "User", arm.logger, w)
		return
	}

	user, token, err := arm.authService.Login(r.Context(), body)
	switch {
	case errors.Is(err, lib.ErrInvalidCredentials):
		arm.logger.Warn("Login failed", gecho.Field("email", body.Email))
		lib.Message(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case errors.Is(err, lib.ErrNotAdministrator):
		lib.Message(w, http.StatusForbidden, middleware.NotAdministratorMessage)
		return
	case err != nil:
		handling.HandleError(err, "Unable to complete login. Please try again", arm.logger, w)
		return
	}

	lib.JSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}

// HandleLoginRedirect answers GET /login, where unauthenticated browsers end up
func (arm *AuthRoutesManager) HandleLoginRedirect(w http.ResponseWriter, r *http.Request) {
	middleware.Unauthenticated(w)
}
