package lib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldError represents a clean validation error for APIs
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a structured validation error
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s %s", e.Errors[0].Field, e.Errors[0].Message)
}

// Add appends a message for field
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
	return e
}

// Fields groups the messages by field in the order they were reported
func (e *ValidationError) Fields() map[string][]string {
	out := make(map[string][]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// NewFieldError builds a ValidationError carrying a single field message
func NewFieldError(field, message string) *ValidationError {
	return (&ValidationError{}).Add(field, message)
}

// ExtractAndValidateBody extracts and validates the request body into the provided struct type T
func ExtractAndValidateBody[T any](r *http.Request) (*T, error) {
	defer r.Body.Close()

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, NewFieldError("body", "The request body could not be read.")
	}

	var body T
	if len(bytes.TrimSpace(data)) > 0 {
		if err := DecodeJSON(data, &body); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return nil, ve
			}
			return nil, NewFieldError("body", "The request body must be valid JSON.")
		}
	}

	if err := Validate(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

// Validate runs the struct validation tags on v
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return mapValidationErrors(ve)
		}
		return err
	}
	return nil
}

func mapValidationErrors(errs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{}

	for _, e := range errs {
		field := fieldPath(e.Namespace())
		label := strings.ReplaceAll(e.Field(), "_", " ")

		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("The %s field is required.", label)
		case "email":
			message = fmt.Sprintf("The %s field must be a valid email address.", label)
		case "min":
			message = fmt.Sprintf("The %s field must be at least %s characters.", label, e.Param())
		case "max":
			message = fmt.Sprintf("The %s field must not be greater than %s characters.", label, e.Param())
		case "gte":
			message = fmt.Sprintf("The %s field must be greater than or equal to %s.", label, e.Param())
		case "lte":
			message = fmt.Sprintf("The %s field must be less than or equal to %s.", label, e.Param())
		case "oneof":
			message = fmt.Sprintf("The selected %s is invalid.", label)
		case "dive":
			// dive is a nested validation tag, skip it as the actual error will be reported by the nested field
			continue
		default:
			message = fmt.Sprintf("The %s field is invalid.", label)
		}

		out.Add(field, message)
	}

	return out
}

// fieldPath turns "ProductRequest.variants[0].price" into "variants.0.price"
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}
