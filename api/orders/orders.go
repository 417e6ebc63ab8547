package orders

import (
	"net/http"
	"shop_admin_server/handling"
	"shop_admin_server/lib"
	"shop_admin_server/structs"

	"github.com/MonkyMars/gecho"
)

const entity = "Order"

func (orm *OrderRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := orm.orderService.List(r.Context())
	if err != nil {
		handling.RespondError(err, entity, orm.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, orders)
}

func (orm *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CreateOrderRequest](r)
	if err != nil {
		orm.logger.Debug("Invalid order request", gecho.Field("error", err))
		handling.RespondError(err, entity, orm.logger, w)
		return
	}

	order, err := orm.orderService.Create(r.Context(), body)
	if err != nil {
		handling.RespondError(err, entity, orm.logger, w)
		return
	}
	lib.JSON(w, http.StatusCreated, order)
}

func (orm *OrderRoutesManager) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		handling.RespondError(lib.ErrNotFound, entity, orm.logger, w)
		return
	}

	order, err := orm.orderService.Get(r.Context(), id)
	if err != nil {
		handling.RespondError(err, entity, orm.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, order)
}

func (orm *OrderRoutesManager) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		handling.RespondError(lib.ErrNotFound, entity, orm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateOrderRequest](r)
	if err != nil {
		handling.RespondError(err, entity, orm.logger, w)
		return
	}

	order, err := orm.orderService.Update(r.Context(), id, body)
	if err != nil {
		handling.RespondError(err, entity, orm.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, order)
}

func (orm *OrderRoutesManager) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := handling.ParseID(r, "id")
	if !ok {
		handling.RespondError(lib.ErrNotFound, entity, orm.logger, w)
		return
	}

	if err := orm.orderService.Delete(r.Context(), id); err != nil {
		handling.RespondError(err, entity, orm.logger, w)
		return
	}
	lib.Message(w, http.StatusOK, "Order deleted successfully")
}
