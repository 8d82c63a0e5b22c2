package handlers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/warehouse-inventory/internal/catalog"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/middleware"
	"github.com/shopspring/decimal"
)

const maxImportSize = 10 << 20

// header aliases, keyed by the normalized column name
var importColumns = map[string]string{
	"sku":           "sku",
	"name":          "name",
	"description":   "description",
	"category":      "category",
	"price":         "price",
	"stock":         "stock",
	"quantity":      "stock",
	"stockquantity": "stock",
	"minimumstock":  "minimum",
	"minstock":      "minimum",
	"supplierid":    "supplierid",
	"supplier":      "supplier",
	"location":      "location",
	"status":        "active",
	"isactive":      "active",
	"active":        "active",
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

// parseImportCSV reads the header and every record. Broken lines become rows with ParseErr set.
func parseImportCSV(ctx context.Context, in io.Reader) ([]catalog.ImportRow, error) {
	reader := csv.NewReader(in)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.New("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		if col, ok := importColumns[normalizeHeader(h)]; ok {
			index[col] = i
		}
	}
	for _, required := range []string{"sku", "name", "price"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing %q column", required)
		}
	}

	var suppliersByName map[string]int
	if _, ok := index["supplierid"]; !ok {
		if _, ok := index["supplier"]; ok {
			suppliersByName, err = supplierNameIndex(ctx)
			if err != nil {
				return nil, err
			}
		}
	}

	var rows []catalog.ImportRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rows = append(rows, catalog.ImportRow{Line: line, ParseErr: err})
			continue
		}

		field := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		row := catalog.ImportRow{Line: line}
		row.Input, row.ParseErr = importInput(field, suppliersByName)
		rows = append(rows, row)
	}
	return rows, nil
}

func importInput(field func(string) string, suppliersByName map[string]int) (catalog.ProductInput, error) {
	in := catalog.ProductInput{
		SKU:         field("sku"),
		Name:        field("name"),
		Description: field("description"),
		Category:    field("category"),
		Location:    field("location"),
	}

	price, err := decimal.NewFromString(field("price"))
	if err != nil {
		return in, errors.New("invalid price")
	}
	in.Price = price

	if in.StockQuantity, err = atoiOrZero(field("stock")); err != nil {
		return in, errors.New("invalid stock quantity")
	}
	if in.MinimumStock, err = atoiOrZero(field("minimum")); err != nil {
		return in, errors.New("invalid minimum stock")
	}

	if s := field("supplierid"); s != "" {
		if in.SupplierID, err = strconv.Atoi(s); err != nil {
			return in, errors.New("invalid supplier id")
		}
	} else if name := field("supplier"); name != "" {
		id, ok := suppliersByName[strings.ToLower(name)]
		if !ok {
			return in, fmt.Errorf("unknown supplier %q", name)
		}
		in.SupplierID = id
	}

	if s := field("active"); s != "" {
		active, err := parseActive(s)
		if err != nil {
			return in, err
		}
		in.IsActive = &active
	}
	return in, nil
}

func atoiOrZero(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// parseActive accepts booleans and the Active/Inactive labels written by the export.
func parseActive(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "active":
		return true, nil
	case "inactive":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid status %q", s)
	}
	return v, nil
}

func supplierNameIndex(ctx context.Context) (map[string]int, error) {
	suppliers, err := supplierService.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int, len(suppliers))
	for _, s := range suppliers {
		byName[strings.ToLower(s.Name)] = s.ID
	}
	return byName, nil
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: sku, name, description, category, price, stock, minimum stock, supplierId or supplier name, location, status.
// @Description In update mode existing SKUs are patched and quantity differences are recorded as Adjustment transactions.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {object} apperrors.Error "Invalid file"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := catalog.ImportMode(strings.ToLower(r.URL.Query().Get("mode")))
	if mode != catalog.ImportUpdate {
		mode = catalog.ImportSkip
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		badRequest(w, r, "missing file")
		return
	}
	defer file.Close()

	rows, err := parseImportCSV(r.Context(), file)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	result := importer.Import(r.Context(), rows, mode, middleware.UsernameFromContext(r.Context()))
	respond(w, r, http.StatusOK, ImportProductsResult{
		Created: result.Created,
		Updated: result.Updated,
		Skipped: result.Skipped,
		Errors:  result.Errors,
	})
}
