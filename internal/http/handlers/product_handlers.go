package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/warehouse-inventory/internal/catalog"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"github.com/shopspring/decimal"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory. The SKU must be unique and the supplier must exist.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} apperrors.Error
// @Failure 409 {object} apperrors.Error "Duplicated SKU"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, r, "invalid input")
		return
	}

	created, err := productService.Create(r.Context(), catalog.ProductInput{
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         decimal.NewFromFloat(req.Price),
		StockQuantity: req.StockQuantity,
		MinimumStock:  req.MinimumStock,
		SupplierID:    req.SupplierID,
		Location:      req.Location,
		IsActive:      req.IsActive,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {object} apperrors.Error
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, toProductResponses(products))
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} apperrors.Error "Invalid ID"
// @Failure 404 {object} apperrors.Error "Not found"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, r, "invalid product ID")
		return
	}

	product, err := productService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, toProductResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Partial update. SKU and stock quantity cannot be changed here; use the stock endpoints.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductUpdateRequest true "Fields to change"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} apperrors.Error
// @Failure 404 {object} apperrors.Error "Not found"
// @Router /products/{id} [put]
// @Security BearerAuth
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, r, "invalid product ID")
		return
	}

	var req ProductUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, r, "invalid input")
		return
	}

	patch := catalog.ProductPatch{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		MinimumStock: req.MinimumStock,
		SupplierID:   req.SupplierID,
		Location:     req.Location,
		IsActive:     req.IsActive,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		patch.Price = &price
	}

	updated, err := productService.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description Products with stock history cannot be deleted; deactivate them instead.
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {object} apperrors.Error "Invalid ID"
// @Failure 404 {object} apperrors.Error "Not found"
// @Failure 409 {object} apperrors.Error "Product has stock history"
// @Router /products/{id} [delete]
// @Security BearerAuth
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, r, "invalid product ID")
		return
	}
	if err := productService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FilterProductsHandler godoc
// @Summary Filter and paginate products
// @Tags products
// @Produce json
// @Param name query string false "Filter by name"
// @Param category query string false "Filter by category"
// @Param supplierId query int false "Filter by supplier"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minQty query int false "Minimum quantity"
// @Param maxQty query int false "Maximum quantity"
// @Param lowStock query bool false "Only products at or below their minimum stock"
// @Param active query bool false "Filter by active flag"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {object} apperrors.Error "Invalid query"
// @Router /products/filter [get]
func FilterProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repo.ProductFilter{
		Name:       q.Get("name"),
		Category:   q.Get("category"),
		SupplierID: parseIntPtr(q.Get("supplierId")),
		MinPrice:   parseFloatPtr(q.Get("minPrice")),
		MaxPrice:   parseFloatPtr(q.Get("maxPrice")),
		MinQty:     parseIntPtr(q.Get("minQty")),
		MaxQty:     parseIntPtr(q.Get("maxQty")),
		LowStock:   parseBoolPtr(q.Get("lowStock")),
		Active:     parseBoolPtr(q.Get("active")),
		Offset:     parseIntPtr(q.Get("offset")),
		Limit:      parseIntPtr(q.Get("limit")),
	}

	if filter.Limit != nil && *filter.Limit <= 0 {
		badRequest(w, r, "limit must be greater than zero")
		return
	}
	if filter.Offset != nil && *filter.Offset < 0 {
		badRequest(w, r, "offset must be zero or positive")
		return
	}

	products, total, err := productService.Filter(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, ProductsSearchResult{
		Data: toProductResponses(products),
		Meta: Meta{TotalCount: total},
	})
}

// LowStockProductsHandler godoc
// @Summary List active products at or below their minimum stock
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {object} apperrors.Error
// @Router /products/low-stock [get]
func LowStockProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productService.LowStock(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, toProductResponses(products))
}
