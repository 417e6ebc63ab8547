package auth

import (
	"net/http"
	"shop_admin_server/handling"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
)

func (arm *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		handling.RespondError(err, "User", arm.logger, w)
		return
	}

	user, err := arm.authService.Register(r.Context(), body)
	if err != nil {
		handling.RespondError(err, "User", arm.logger, w)
		return
	}

	lib.JSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    user,
	})
}
