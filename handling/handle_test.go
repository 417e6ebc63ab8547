package handling

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"shop_admin_server/lib"
	"strings"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondError(t *testing.T) {
	logger := gecho.NewDefaultLogger()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "validation",
			err:        lib.NewFieldError("name", "The name field is required."),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody: map[string]any{
				"message": "Validation failed",
				"errors":  map[string]any{"name": []any{"The name field is required."}},
			},
		},
		{
			name:       "not found",
			err:        fmt.Errorf("load: %w", lib.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"message": "Order not found"},
		},
		{
			name:       "conflict",
			err:        fmt.Errorf("%w: duplicate key", lib.ErrConflict),
			wantStatus: http.StatusConflict,
			wantBody: map[string]any{
				"message": "Duplicate entry detected.",
				"error":   "conflict: duplicate key",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(tt.err, "Order", logger, rec)
			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, tt.wantBody, decode(t, rec))
		})
	}

	t.Run("unexpected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RespondError(errors.New("boom"), "Order", logger, rec)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestParseBulkIDs(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantIDs []int64
	}{
		{"ids", `{"ids":[1,2,3]}`, []int64{1, 2, 3}},
		{"empty list", `{"ids":[]}`, nil},
		{"missing ids", `{}`, nil},
		{"no body", ``, nil},
		{"malformed", `{"ids":`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/products/bulkDelete", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			ids, ok := ParseBulkIDs(r, rec)
			if tt.wantIDs == nil {
				require.False(t, ok)
				require.Equal(t, http.StatusBadRequest, rec.Code)
				require.Equal(t, map[string]any{"error": "No valid IDs provided"}, decode(t, rec))
				return
			}
			require.True(t, ok)
			require.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestParseProductListOptions(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/products?search=+hat+&product_type=simple&sort_by=name&sort_direction=desc&category_id=4", nil)
	opts, err := ParseProductListOptions(r)
	require.NoError(t, err)
	require.Equal(t, "hat", opts.SearchTerm)
	require.Equal(t, "simple", opts.ProductType)
	require.Equal(t, "name", opts.SortBy)
	require.Equal(t, "DESC", opts.SortDirection)
	require.NotNil(t, opts.CategoryID)
	require.Equal(t, int64(4), *opts.CategoryID)
	require.Nil(t, opts.TagID)

	r = httptest.NewRequest(http.MethodGet, "/products?tag_id=abc", nil)
	_, err = ParseProductListOptions(r)
	var ve *lib.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Equal(t, []string{"The tag id field must be an integer."}, ve.Fields()["tag_id"])

	r = httptest.NewRequest(http.MethodGet, "/products?limit=20&offset=40", nil)
	opts, err = ParseProductListOptions(r)
	require.NoError(t, err)
	require.NotNil(t, opts.Limit)
	require.Equal(t, 20, *opts.Limit)
	require.Equal(t, 40, opts.Offset)

	r = httptest.NewRequest(http.MethodGet, "/products?limit=all", nil)
	_, err = ParseProductListOptions(r)
	require.True(t, errors.As(err, &ve))
	require.Equal(t, []string{"The limit field must be an integer."}, ve.Fields()["limit"])
}
