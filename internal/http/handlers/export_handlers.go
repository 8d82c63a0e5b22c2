package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// exportLimit caps a single transaction export.
const exportLimit = 10000

// ExportProductsHandler godoc
// @Summary Export products as CSV
// @Tags export
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Failure 500 {object} apperrors.Error
// @Router /products/export [get]
func ExportProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", attachment("products", "csv"))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"SKU", "Name", "Category", "Price", "Stock", "Minimum Stock", "Supplier", "Location", "Status"})
	for _, p := range products {
		supplier := ""
		if p.Supplier != nil {
			supplier = p.Supplier.Name
		}
		status := "Active"
		if !p.IsActive {
			status = "Inactive"
		}
		_ = cw.Write([]string{
			p.SKU,
			p.Name,
			p.Category,
			p.Price.StringFixed(2),
			strconv.Itoa(p.StockQuantity),
			strconv.Itoa(p.MinimumStock),
			supplier,
			p.Location,
			status,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logger.Warn("failed to write products export", zap.Error(err))
	}
}

// ExportTransactionsHandler godoc
// @Summary Export stock transactions
// @Tags export
// @Produce text/csv
// @Produce json
// @Param format query string false "csv (default) or json"
// @Param productId query int false "Filter by product"
// @Param type query string false "Transaction type"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Success 200 {array} TransactionResponse
// @Failure 400 {object} apperrors.Error
// @Router /transactions/export [get]
func ExportTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		badRequest(w, r, "unsupported format")
		return
	}

	tf, msg := transactionFilterFromQuery(r)
	if msg != "" {
		badRequest(w, r, msg)
		return
	}
	if tf.Limit == nil {
		limit := exportLimit
		tf.Limit = &limit
	}

	items, _, err := historyService.List(r.Context(), tf)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if format == "json" {
		w.Header().Set("Content-Disposition", attachment("transactions", "json"))
		respond(w, r, http.StatusOK, toTransactionResponses(items))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", attachment("transactions", "csv"))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"ID", "Date", "SKU", "Product", "Type", "Quantity", "Reference", "Notes", "Performed By"})
	for _, t := range items {
		_ = cw.Write([]string{
			strconv.Itoa(t.ID),
			t.TransactionDate.UTC().Format(time.RFC3339),
			t.ProductSKU,
			t.ProductName,
			string(t.Type),
			strconv.Itoa(t.Quantity),
			t.Reference,
			t.Notes,
			t.PerformedBy,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logger.Warn("failed to write transactions export", zap.Error(err))
	}
}

func attachment(name, ext string) string {
	return fmt.Sprintf("attachment; filename=%s_%s.%s", name, time.Now().Format("20060102"), ext)
}
