package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"
	"strings"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type fakeTaxonomy[T any] struct {
	items map[int64]*T
	build func(id int64, req *structs.TaxonomyRequest) *T
}

func (f *fakeTaxonomy[T]) List(context.Context) ([]T, error) {
	out := []T{}
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeTaxonomy[T]) Create(_ context.Context, req *structs.TaxonomyRequest) (*T, error) {
	id := int64(len(f.items) + 1)
	f.items[id] = f.build(id, req)
	return f.items[id], nil
}

func (f *fakeTaxonomy[T]) Get(_ context.Context, id int64) (*T, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	return item, nil
}

func (f *fakeTaxonomy[T]) Update(_ context.Context, id int64, req *structs.TaxonomyRequest) (*T, error) {
	if _, ok := f.items[id]; !ok {
		return nil, lib.ErrNotFound
	}
	f.items[id] = f.build(id, req)
	return f.items[id], nil
}

func (f *fakeTaxonomy[T]) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return lib.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeValues struct {
	attributes map[int64]bool
	values     map[int64]*tables.AttributeValue
}

func (f *fakeValues) List(_ context.Context, attributeID int64) ([]tables.AttributeValue, error) {
	if !f.attributes[attributeID] {
		return nil, lib.ErrNotFound
	}
	out := []tables.AttributeValue{}
	for _, v := range f.values {
		if v.AttributeID == attributeID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeValues) Create(_ context.Context, attributeID int64, req *structs.AttributeValueRequest) (*tables.AttributeValue, error) {
	if !f.attributes[attributeID] {
		return nil, lib.ErrNotFound
	}
	v := &tables.AttributeValue{ID: int64(len(f.values) + 1), AttributeID: attributeID, Value: req.Value}
	f.values[v.ID] = v
	return v, nil
}

func (f *fakeValues) Get(_ context.Context, attributeID, valueID int64) (*tables.AttributeValue, error) {
	v, ok := f.values[valueID]
	if !ok || v.AttributeID != attributeID {
		return nil, lib.ErrNotFound
	}
	return v, nil
}

func (f *fakeValues) Update(ctx context.Context, attributeID, valueID int64, req *structs.AttributeValueRequest) (*tables.AttributeValue, error) {
	v, err := f.Get(ctx, attributeID, valueID)
	if err != nil {
		return nil, err
	}
	v.Value = req.Value
	return v, nil
}

func (f *fakeValues) Delete(ctx context.Context, attributeID, valueID int64) error {
	if _, err := f.Get(ctx, attributeID, valueID); err != nil {
		return err
	}
	delete(f.values, valueID)
	return nil
}

func newTestRouter() chi.Router {
	categories := &fakeTaxonomy[tables.Category]{items: map[int64]*tables.Category{}, build: func(id int64, req *structs.TaxonomyRequest) *tables.Category {
		return &tables.Category{ID: id, Name: req.Name, Slug: lib.Slugify(req.Name)}
	}}
	tags := &fakeTaxonomy[tables.Tag]{items: map[int64]*tables.Tag{}, build: func(id int64, req *structs.TaxonomyRequest) *tables.Tag {
		return &tables.Tag{ID: id, Name: req.Name, Slug: lib.Slugify(req.Name)}
	}}
	attributes := &fakeTaxonomy[tables.Attribute]{items: map[int64]*tables.Attribute{}, build: func(id int64, req *structs.TaxonomyRequest) *tables.Attribute {
		return &tables.Attribute{ID: id, Name: req.Name, Slug: lib.Slugify(req.Name)}
	}}
	values := &fakeValues{attributes: map[int64]bool{1: true}, values: map[int64]*tables.AttributeValue{}}

	r := chi.NewRouter()
	NewCatalogRoutesManager(gecho.NewDefaultLogger(), categories, tags, attributes, values).RegisterRoutes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	var out map[string]any
	if strings.HasPrefix(rec.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func TestTaxonomyRoutes(t *testing.T) {
	h := newTestRouter()

	for _, tc := range []struct{ base, entity string }{
		{"/categories", "Category"},
		{"/tags", "Tag"},
		{"/attributes", "Attribute"},
	} {
		t.Run(tc.entity, func(t *testing.T) {
			status, body := do(t, h, http.MethodPost, tc.base, `{"name":"Summer Sale"}`)
			require.Equal(t, http.StatusCreated, status)
			require.Equal(t, "summer-sale", body["slug"])

			status, body = do(t, h, http.MethodPost, tc.base, `{}`)
			require.Equal(t, http.StatusUnprocessableEntity, status)
			require.Equal(t, map[string]any{"name": []any{"The name field is required."}}, body["errors"])

			status, _ = do(t, h, http.MethodPut, tc.base+"/1", `{"name":"Winter"}`)
			require.Equal(t, http.StatusOK, status)

			status, body = do(t, h, http.MethodPut, tc.base+"/9", `{"name":"Winter"}`)
			require.Equal(t, http.StatusNotFound, status)
			require.Equal(t, map[string]any{"message": tc.entity + " not found"}, body)

			status, body = do(t, h, http.MethodDelete, tc.base+"/1", "")
			require.Equal(t, http.StatusOK, status)
			require.Equal(t, map[string]any{"message": tc.entity + " deleted successfully"}, body)

			status, _ = do(t, h, http.MethodDelete, tc.base+"/1", "")
			require.Equal(t, http.StatusNotFound, status)
		})
	}
}

func TestAttributeValueRoutes(t *testing.T) {
	h := newTestRouter()

	status, body := do(t, h, http.MethodPost, "/attributes/1/values", `{"value":"Red"}`)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "Red", body["value"])

	status, body = do(t, h, http.MethodPost, "/attributes/2/values", `{"value":"Red"}`)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, map[string]any{"message": "Attribute not found"}, body)

	status, _ = do(t, h, http.MethodGet, "/attributes/1/values/1", "")
	require.Equal(t, http.StatusOK, status)

	status, body = do(t, h, http.MethodPut, "/attributes/1/values/1", `{"value":"Blue"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Blue", body["value"])

	status, body = do(t, h, http.MethodDelete, "/attributes/1/values/1", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, map[string]any{"message": "Attribute value deleted successfully"}, body)

	status, body = do(t, h, http.MethodDelete, "/attributes/1/values/1", "")
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, map[string]any{"message": "Attribute value not found"}, body)
}
