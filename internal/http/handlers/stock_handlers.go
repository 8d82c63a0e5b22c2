package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/warehouse-inventory/internal/http/middleware"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"github.com/rogerio-castellano/warehouse-inventory/internal/stock"
)

// ApplyStockChangeHandler godoc
// @Summary Apply a stock change
// @Description Applies a signed quantity to the product and records one stock transaction.
// @Description Purchase and Return need a positive quantity, Sale a negative one, Adjustment either.
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param change body StockChangeRequest true "Stock change"
// @Success 200 {object} StockChangeResponse
// @Failure 400 {object} apperrors.Error "Invalid input"
// @Failure 404 {object} apperrors.Error "Product not found"
// @Failure 409 {object} apperrors.Error "Insufficient stock or invalid delta type"
// @Router /products/{id}/stock [post]
func ApplyStockChangeHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, r, "invalid product ID")
		return
	}

	var req StockChangeRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, r, "invalid input")
		return
	}

	applyStockChange(w, r, stock.Change{
		ProductID:   id,
		Delta:       req.Quantity,
		Type:        req.Type,
		Reference:   req.Reference,
		Notes:       req.Notes,
		PerformedBy: middleware.UsernameFromContext(r.Context()),
	})
}

// AdjustStockHandler godoc
// @Summary Adjust stock by a bare delta
// @Description The body is a signed integer. Positive deltas are recorded as Purchase, negative ones as Adjustment.
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param delta body int true "Signed quantity"
// @Success 200 {object} StockChangeResponse
// @Failure 400 {object} apperrors.Error "Invalid input"
// @Failure 404 {object} apperrors.Error "Product not found"
// @Failure 409 {object} apperrors.Error "Insufficient stock"
// @Router /products/{id}/stock [patch]
func AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, r, "invalid product ID")
		return
	}

	var delta int
	if err := readJSON(w, r, &delta); err != nil {
		badRequest(w, r, "invalid input")
		return
	}

	applyStockChange(w, r, stock.Change{
		ProductID:   id,
		Delta:       delta,
		Type:        stock.InferTransactionType(delta),
		PerformedBy: middleware.UsernameFromContext(r.Context()),
	})
}

func applyStockChange(w http.ResponseWriter, r *http.Request, c stock.Change) {
	product, txn, err := ledger.ApplyStockChange(r.Context(), c)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if product.Supplier == nil {
		if withSupplier, err := productService.Get(r.Context(), product.ID); err == nil {
			product = withSupplier
		}
	}
	txn.ProductSKU = product.SKU
	txn.ProductName = product.Name

	respond(w, r, http.StatusOK, StockChangeResponse{
		Product:     toProductResponse(product),
		Transaction: toTransactionResponse(txn),
	})
}

// GetProductTransactionsHandler godoc
// @Summary Stock history of one product
// @Tags stock
// @Produce json
// @Param id path int true "Product ID"
// @Param type query string false "Transaction type (Purchase|Sale|Adjustment|Return)"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} TransactionsSearchResult
// @Failure 400 {object} apperrors.Error
// @Failure 404 {object} apperrors.Error "Product not found"
// @Router /products/{id}/transactions [get]
func GetProductTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, r, "invalid product ID")
		return
	}

	tf, msg := transactionFilterFromQuery(r)
	if msg != "" {
		badRequest(w, r, msg)
		return
	}

	items, total, err := historyService.ForProduct(r.Context(), id, tf)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, TransactionsSearchResult{
		Data: toTransactionResponses(items),
		Meta: Meta{TotalCount: total},
	})
}

// GetTransactionsHandler godoc
// @Summary Global stock history
// @Tags stock
// @Produce json
// @Param productId query int false "Filter by product"
// @Param type query string false "Transaction type (Purchase|Sale|Adjustment|Return)"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} TransactionsSearchResult
// @Failure 400 {object} apperrors.Error
// @Router /transactions [get]
func GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	tf, msg := transactionFilterFromQuery(r)
	if msg != "" {
		badRequest(w, r, msg)
		return
	}

	items, total, err := historyService.List(r.Context(), tf)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, TransactionsSearchResult{
		Data: toTransactionResponses(items),
		Meta: Meta{TotalCount: total},
	})
}

func transactionFilterFromQuery(r *http.Request) (repo.TransactionFilter, string) {
	q := r.URL.Query()

	tf := repo.TransactionFilter{
		ProductID: parseIntPtr(q.Get("productId")),
		Type:      models.TransactionType(q.Get("type")),
		Offset:    parseIntPtr(q.Get("offset")),
		Limit:     parseIntPtr(q.Get("limit")),
	}

	since, err := parseTimePtr(q.Get("since"))
	if err != nil {
		return tf, "since must be an RFC3339 timestamp"
	}
	until, err := parseTimePtr(q.Get("until"))
	if err != nil {
		return tf, "until must be an RFC3339 timestamp"
	}
	tf.Since, tf.Until = since, until

	if tf.Limit != nil && *tf.Limit <= 0 {
		return tf, "limit must be greater than zero"
	}
	if tf.Offset != nil && *tf.Offset < 0 {
		return tf, "offset must be zero or positive"
	}
	return tf, ""
}
