package catalog

import (
	"net/http"
	"shop_admin_server/handling"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
)

const valueEntity = "Attribute value"

// valueIDs reads the attribute and value ids; a bad id answers 404 like a missing row
func (crm *CatalogRoutesManager) valueIDs(w http.ResponseWriter, r *http.Request, withValue bool) (attributeID, valueID int64, ok bool) {
	attributeID, ok = handling.ParseID(r, "attributeId")
	if !ok {
		handling.RespondError(lib.ErrNotFound, "Attribute", crm.logger, w)
		return 0, 0, false
	}
	if !withValue {
		return attributeID, 0, true
	}
	valueID, ok = handling.ParseID(r, "valueId")
	if !ok {
		handling.RespondError(lib.ErrNotFound, valueEntity, crm.logger, w)
		return 0, 0, false
	}
	return attributeID, valueID, true
}

func (crm *CatalogRoutesManager) ListValues(w http.ResponseWriter, r *http.Request) {
	attributeID, _, ok := crm.valueIDs(w, r, false)
	if !ok {
		return
	}

	values, err := crm.values.List(r.Context(), attributeID)
	if err != nil {
		handling.RespondError(err, "Attribute", crm.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, values)
}

func (crm *CatalogRoutesManager) CreateValue(w http.ResponseWriter, r *http.Request) {
	attributeID, _, ok := crm.valueIDs(w, r, false)
	if !ok {
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AttributeValueRequest](r)
	if err != nil {
		handling.RespondError(err, valueEntity, crm.logger, w)
		return
	}

	value, err := crm.values.Create(r.Context(), attributeID, body)
	if err != nil {
		handling.RespondError(err, "Attribute", crm.logger, w)
		return
	}
	lib.JSON(w, http.StatusCreated, value)
}

func (crm *CatalogRoutesManager) GetValue(w http.ResponseWriter, r *http.Request) {
	attributeID, valueID, ok := crm.valueIDs(w, r, true)
	if !ok {
		return
	}

	value, err := crm.values.Get(r.Context(), attributeID, valueID)
	if err != nil {
		handling.RespondError(err, valueEntity, crm.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, value)
}

func (crm *CatalogRoutesManager) UpdateValue(w http.ResponseWriter, r *http.Request) {
	attributeID, valueID, ok := crm.valueIDs(w, r, true)
	if !ok {
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AttributeValueRequest](r)
	if err != nil {
		handling.RespondError(err, valueEntity, crm.logger, w)
		return
	}

	value, err := crm.values.Update(r.Context(), attributeID, valueID, body)
	if err != nil {
		handling.RespondError(err, valueEntity, crm.logger, w)
		return
	}
	lib.JSON(w, http.StatusOK, value)
}

func (crm *CatalogRoutesManager) DeleteValue(w http.ResponseWriter, r *http.Request) {
	attributeID, valueID, ok := crm.valueIDs(w, r, true)
	if !ok {
		return
	}

	if err := crm.values.Delete(r.Context(), attributeID, valueID); err != nil {
		handling.RespondError(err, valueEntity, crm.logger, w)
		return
	}
	lib.Message(w, http.StatusOK, "Attribute value deleted successfully")
}
