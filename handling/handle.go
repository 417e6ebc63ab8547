package handling

import (
	"errors"
	"net/http"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w, gecho.WithMessage(msg)).Send()
}

// RespondError maps a service error onto the JSON error contract. entity names
// the record in the 404 message.
func RespondError(err error, entity string, logger *gecho.Logger, w http.ResponseWriter) {
	var ve *lib.ValidationError
	switch {
	case errors.As(err, &ve):
		lib.ValidationFailed(w, ve)
	case lib.IsNotFound(err):
		lib.Message(w, http.StatusNotFound, entity+" not found")
	case lib.IsConflict(err):
		logger.Warn("Conflicting write", gecho.Field("error", err), gecho.Field("entity", entity))
		lib.JSON(w, http.StatusConflict, map[string]string{
			"message": "Duplicate entry detected.",
			"error":   err.Error(),
		})
	default:
		HandleError(err, "An error occurred while processing the "+entity+".", logger, w)
	}
}

// ParseID reads a positive integer route parameter
func ParseID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParseBulkIDs reads {"ids":[...]} and writes the 400 response itself when no
// usable id was sent
func ParseBulkIDs(r *http.Request, w http.ResponseWriter) ([]int64, bool) {
	body, err := lib.ExtractAndValidateBody[structs.BulkDeleteRequest](r)
	if err != nil || len(body.IDs) == 0 {
		lib.JSON(w, http.StatusBadRequest, map[string]string{"error": "No valid IDs provided"})
		return nil, false
	}
	return body.IDs, true
}
