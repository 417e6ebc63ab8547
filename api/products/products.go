package products

import (
	"errors"
	"net/http"
	"shop_admin_server/handling"
	"shop_admin_server/lib"

	"github.com/MonkyMars/gecho"
)

const entity = "Product"

// respondWriteError answers a failed create or update; action is "creating" or "updating"
func (prm *ProductRoutesManager) respondWriteError(w http.ResponseWriter, err error, action string) {
	var ve *lib.ValidationError
	switch {
	case errors.As(err, &ve):
		lib.ValidationFailed(w, ve)
	case lib.IsNotFound(err):
		lib.Message(w, http.StatusNotFound, entity+" not found")
	case lib.IsConflict(err):
		prm.logger.Warn("Duplicate product entry", gecho.Field("error", err))
		lib.JSON(w, http.StatusConflict, map[string]string{
			"message": "Duplicate entry detected. Please check the SKU, slug, or other unique fields.",
			"error":   err.Error(),
		})
	default:
		prm.logger.Error("Product write failed", gecho.Field("error", err), gecho.Field("action", action))
		lib.JSON(w, http.StatusInternalServerError, map[string]string{
			"message": "An error occurred while " + action + " the product.",
			"error":   err.Error(),
		})
	}
}

func (prm *ProductRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		handling.RespondError(err, entity, prm.logger, w)
		return
	}

	products, err := prm.productService.List(r.Context(), opts)
	if err != nil {
		handling.RespondError(err, entity, prm.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, products)
}

func (prm *ProductRoutesManager) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		handling.RespondError(lib.ErrNotFound, entity, prm.logger, w)
		return
	}

	product, err := prm.productService.Get(r.Context(), id)
	if err != nil {
		handling.RespondError(err, entity, prm.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, product)
}

func (prm *ProductRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, uploads, err := parseProductRequest(r)
	if err != nil {
		prm.respondWriteError(w, err, "creating")
		return
	}

	product, err := prm.productService.Create(r.Context(), body, uploads)
	if err != nil {
		prm.respondWriteError(w, err, "creating")
		return
	}
	lib.JSON(w, http.StatusCreated, product)
}

func (prm *ProductRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		handling.RespondError(lib.ErrNotFound, entity, prm.logger, w)
		return
	}

	body, uploads, err := parseProductRequest(r)
	if err != nil {
		prm.respondWriteError(w, err, "updating")
		return
	}

	product, err := prm.productService.Update(r.Context(), id, body, uploads)
	if err != nil {
		prm.respondWriteError(w, err, "updating")
		return
	}
	lib.JSON(w, http.StatusOK, product)
}

func (prm *ProductRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		handling.RespondError(lib.ErrNotFound, entity, prm.logger, w)
		return
	}

	if err := prm.productService.Delete(r.Context(), id); err != nil {
		handling.RespondError(err, entity, prm.logger, w)
		return
	}
	lib.Message(w, http.StatusOK, "Product deleted successfully")
}

func (prm *ProductRoutesManager) BulkDeleteProducts(w http.ResponseWriter, r *http.Request) {
	ids, ok := handling.ParseBulkIDs(r, w)
	if !ok {
		return
	}

	deleted, err := prm.productService.BulkDelete(r.Context(), ids)
	if err != nil {
		handling.RespondError(err, entity, prm.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}
