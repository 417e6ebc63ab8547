package lib

import (
	"net/http"

	"github.com/unrolled/render"
)

var renderer = render.New(render.Options{
	UnEscapeHTML: true,
})

// JSON writes v with the given status
func JSON(w http.ResponseWriter, status int, v any) error {
	return renderer.JSON(w, status, v)
}

// Message writes {"message": msg}
func Message(w http.ResponseWriter, status int, msg string) error {
	return JSON(w, status, map[string]string{"message": msg})
}

// ValidationFailed writes the 422 body for a ValidationError
func ValidationFailed(w http.ResponseWriter, ve *ValidationError) error {
	return JSON(w, http.StatusUnprocessableEntity, map[string]any{
		"message": "Validation failed",
		"errors":  ve.Fields(),
	})
}
