package users

import (
	"net/http"
	"shop_admin_server/handling"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
)

const entity = "User"

func (urm *UserRoutesManager) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := urm.userService.List(r.Context())
	if err != nil {
		handling.RespondError(err, entity, urm.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, users)
}

func (urm *UserRoutesManager) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "userId")
	if !ok {
		handling.RespondError(lib.ErrNotFound, entity, urm.logger, w)
		return
	}

	user, err := urm.userService.Get(r.Context(), id)
	if err != nil {
		handling.RespondError(err, entity, urm.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, user)
}

func (urm *UserRoutesManager) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "userId")
	if !ok {
		handling.RespondError(lib.ErrNotFound, entity, urm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateUserRequest](r)
	if err != nil {
		handling.RespondError(err, entity, urm.logger, w)
		return
	}

	user, err := urm.userService.Update(r.Context(), id, body)
	if err != nil {
		handling.RespondError(err, entity, urm.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, user)
}

func (urm *UserRoutesManager) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "userId")
	if !ok {
		handling.RespondError(lib.ErrNotFound, entity, urm.logger, w)
		return
	}

	if err := urm.userService.Delete(r.Context(), id); err != nil {
		handling.RespondError(err, entity, urm.logger, w)
		return
	}
	lib.Message(w, http.StatusOK, "User deleted successfully")
}

func (urm *UserRoutesManager) BulkDeleteUsers(w http.ResponseWriter, r *http.Request) {
	ids, ok := handling.ParseBulkIDs(r, w)
	if !ok {
		return
	}

	deleted, err := urm.userService.BulkDelete(r.Context(), ids)
	if err != nil {
		handling.RespondError(err, entity, urm.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}
