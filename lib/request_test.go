package lib

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type variantBody struct {
	Price *int `json:"price" validate:"required"`
}

type productBody struct {
	Name     string        `json:"name" validate:"required,max=5"`
	Email    string        `json:"email" validate:"omitempty,email"`
	Variants []variantBody `json:"variants" validate:"omitempty,dive"`
}

func TestExtractAndValidateBody(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Hat"}`))
		body, err := ExtractAndValidateBody[productBody](r)
		require.NoError(t, err)
		require.Equal(t, "Hat", body.Name)
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))
		_, err := ExtractAndValidateBody[productBody](r)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		require.Equal(t, map[string][]string{"body": {"The request body must be valid JSON."}}, ve.Fields())
	})

	t.Run("empty body is validated", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(""))
		_, err := ExtractAndValidateBody[productBody](r)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		require.Equal(t, []string{"The name field is required."}, ve.Fields()["name"])
	})
}

func TestValidateFieldPaths(t *testing.T) {
	err := Validate(&productBody{
		Name:     "Too long",
		Email:    "nope",
		Variants: []variantBody{{}, {}},
	})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))

	fields := ve.Fields()
	require.Equal(t, []string{"The name field must not be greater than 5 characters."}, fields["name"])
	require.Equal(t, []string{"The email field must be a valid email address."}, fields["email"])
	require.Equal(t, []string{"The price field is required."}, fields["variants.0.price"])
	require.Contains(t, fields, "variants.1.price")
}

func TestFieldPath(t *testing.T) {
	tests := []struct {
		namespace string
		want      string
	}{
		{"ProductRequest.name", "name"},
		{"ProductRequest.variants[0].price", "variants.0.price"},
		{"ProductRequest.variants[12].attributes[Color]", "variants.12.attributes.Color"},
	}
	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			require.Equal(t, tt.want, fieldPath(tt.namespace))
		})
	}
}

func TestValidationErrorGroupsMessages(t *testing.T) {
	ve := NewFieldError("email", "first").Add("email", "second").Add("name", "third")
	require.Equal(t, map[string][]string{
		"email": {"first", "second"},
		"name":  {"third"},
	}, ve.Fields())
	require.Equal(t, "validation failed: email first", ve.Error())
}
