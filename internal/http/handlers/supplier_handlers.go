package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/warehouse-inventory/internal/catalog"
)

// CreateSupplierHandler godoc
// @Summary Create a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param supplier body SupplierRequest true "Supplier to add"
// @Success 201 {object} SupplierResponse
// @Failure 400 {object} apperrors.Error
// @Router /suppliers [post]
func CreateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	var req SupplierRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, r, "invalid input")
		return
	}

	created, err := supplierService.Create(r.Context(), catalog.SupplierInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		IsActive:      req.IsActive,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, toSupplierResponse(created))
}

// GetSuppliersHandler godoc
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Param active query bool false "Only active suppliers"
// @Success 200 {array} SupplierResponse
// @Router /suppliers [get]
func GetSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	list := supplierService.List
	if active := parseBoolPtr(r.URL.Query().Get("active")); active != nil && *active {
		list = supplierService.ListActive
	}

	suppliers, err := list(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		resp[i] = toSupplierResponse(s)
	}
	respond(w, r, http.StatusOK, resp)
}

// GetSupplierByIDHandler godoc
// @Summary Get supplier by ID
// @Tags suppliers
// @Produce json
// @Param id path int true "Supplier ID"
// @Success 200 {object} SupplierResponse
// @Failure 400 {object} apperrors.Error "Invalid ID"
// @Failure 404 {object} apperrors.Error "Not found"
// @Router /suppliers/{id} [get]
func GetSupplierByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, r, "invalid supplier ID")
		return
	}

	supplier, err := supplierService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, toSupplierResponse(supplier))
}

// UpdateSupplierHandler godoc
// @Summary Update a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Param supplier body SupplierUpdateRequest true "Fields to change"
// @Success 200 {object} SupplierResponse
// @Failure 400 {object} apperrors.Error
// @Failure 404 {object} apperrors.Error "Not found"
// @Router /suppliers/{id} [put]
func UpdateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, r, "invalid supplier ID")
		return
	}

	var req SupplierUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, r, "invalid input")
		return
	}

	updated, err := supplierService.Update(r.Context(), id, catalog.SupplierPatch{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		IsActive:      req.IsActive,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, toSupplierResponse(updated))
}

// DeleteSupplierHandler godoc
// @Summary Delete a supplier
// @Tags suppliers
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {object} apperrors.Error "Not found"
// @Failure 409 {object} apperrors.Error "Supplier still referenced by products"
// @Router /suppliers/{id} [delete]
func DeleteSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, r, "invalid supplier ID")
		return
	}
	if err := supplierService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
