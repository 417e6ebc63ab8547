package catalog

import (
	"net/http"
	"shop_admin_server/handling"
	"shop_admin_server/lib"
	"shop_admin_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type taxonomyRoutes[T any] struct {
	logger *gecho.Logger
	store  taxonomyStore[T]
	entity string
}

func (tr *taxonomyRoutes[T]) mount(r chi.Router, base string) {
	r.Get(base, tr.list)
	r.Post(base, tr.create)
	r.Get(base+"/{id}", tr.get)
	r.Put(base+"/{id}", tr.update)
	r.Delete(base+"/{id}", tr.delete)
}

func (tr *taxonomyRoutes[T]) list(w http.ResponseWriter, r *http.Request) {
	items, err := tr.store.List(r.Context())
	if err != nil {
		handling.RespondError(err, tr.entity, tr.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, items)
}

func (tr *taxonomyRoutes[T]) create(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.TaxonomyRequest](r)
	if err != nil {
		handling.RespondError(err, tr.entity, tr.logger, w)
		return
	}

	item, err := tr.store.Create(r.Context(), body)
	if err != nil {
		handling.RespondError(err, tr.entity, tr.logger, w)
		return
	}
	lib.JSON(w, http.StatusCreated, item)
}

func (tr *taxonomyRoutes[T]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		handling.RespondError(lib.ErrNotFound, tr.entity, tr.logger, w)
		return
	}

	item, err := tr.store.Get(r.Context(), id)
	if err != nil {
		handling.RespondError(err, tr.entity, tr.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, item)
}

func (tr *taxonomyRoutes[T]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		handling.RespondError(lib.ErrNotFound, tr.entity, tr.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.TaxonomyRequest](r)
	if err != nil {
		handling.RespondError(err, tr.entity, tr.logger, w)
		return
	}

	item, err := tr.store.Update(r.Context(), id, body)
	if err != nil {
		handling.RespondError(err, tr.entity, tr.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, item)
}

func (tr *taxonomyRoutes[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		handling.RespondError(lib.ErrNotFound, tr.entity, tr.logger, w)
		return
	}

	if err := tr.store.Delete(r.Context(), id); err != nil {
		handling.RespondError(err, tr.entity, tr.logger, w)
		return
	}
	lib.Message(w, http.StatusOK, tr.entity+" deleted successfully")
}
