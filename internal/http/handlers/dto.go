package handlers

import (
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/apperrors"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/reorder"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

type ProductRequest struct {
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	MinimumStock  int     `json:"minimumStock"`
	SupplierID    int     `json:"supplierId"`
	Location      string  `json:"location"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

// ProductUpdateRequest is a partial update; omitted fields are left unchanged.
type ProductUpdateRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	MinimumStock *int     `json:"minimumStock,omitempty"`
	SupplierID   *int     `json:"supplierId,omitempty"`
	Location     *string  `json:"location,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

type SupplierSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProductResponse struct {
	ID            int              `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	Price         float64          `json:"price"`
	StockQuantity int              `json:"stockQuantity"`
	MinimumStock  int              `json:"minimumStock"`
	SupplierID    int              `json:"supplierId"`
	Supplier      *SupplierSummary `json:"supplier,omitempty"`
	Location      string           `json:"location"`
	IsActive      bool             `json:"isActive"`
	IsLowStock    bool             `json:"isLowStock"`
	StockValue    float64          `json:"stockValue"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta"`
}

// StockChangeRequest carries a signed quantity and an explicit transaction type.
type StockChangeRequest struct {
	Type      models.TransactionType `json:"type"`
	Quantity  int                    `json:"quantity"`
	Reference string                 `json:"reference,omitempty"`
	Notes     string                 `json:"notes,omitempty"`
}

type TransactionResponse struct {
	ID              int                    `json:"id"`
	ProductID       int                    `json:"productId"`
	ProductSKU      string                 `json:"productSku,omitempty"`
	ProductName     string                 `json:"productName,omitempty"`
	Type            models.TransactionType `json:"type"`
	Quantity        int                    `json:"quantity"`
	Reference       string                 `json:"reference,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	TransactionDate time.Time              `json:"transactionDate"`
	PerformedBy     string                 `json:"performedBy"`
}

type StockChangeResponse struct {
	Product     ProductResponse     `json:"product"`
	Transaction TransactionResponse `json:"transaction"`
}

type TransactionsSearchResult struct {
	Data []TransactionResponse `json:"data"`
	Meta Meta                  `json:"meta"`
}

type SupplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	IsActive      *bool  `json:"isActive,omitempty"`
}

type SupplierUpdateRequest struct {
	Name          *string `json:"name,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

type SupplierResponse struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ReorderSuggestionResponse struct {
	ID                     int              `json:"id"`
	SKU                    string           `json:"sku"`
	Name                   string           `json:"name"`
	Category               string           `json:"category"`
	CurrentStock           int              `json:"currentStock"`
	MinimumStock           int              `json:"minimumStock"`
	Deficit                int              `json:"deficit"`
	SuggestedOrderQuantity int              `json:"suggestedOrderQuantity"`
	EstimatedCost          float64          `json:"estimatedCost"`
	Priority               reorder.Priority `json:"priority"`
	Supplier               *SupplierSummary `json:"supplier"`
}

type MetricsResponse struct {
	TotalProducts        int              `json:"totalProducts"`
	TotalItems           int              `json:"totalItems"`
	TotalValue           float64          `json:"totalValue"`
	LowStockCount        int              `json:"lowStockCount"`
	TotalTransactions    int              `json:"totalTransactions"`
	CategoryDistribution map[string]int   `json:"categoryDistribution"`
	MostMovedProduct     MostMovedProduct `json:"mostMovedProduct"`
}

type MostMovedProduct struct {
	Name          string `json:"name"`
	MovementCount int    `json:"movementCount"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ImportProductsResult struct {
	Created int                    `json:"created"`
	Updated int                    `json:"updated"`
	Skipped int                    `json:"skipped"`
	Errors  []apperrors.FieldError `json:"errors"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func toProductResponse(p models.Product) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price.InexactFloat64(),
		StockQuantity: p.StockQuantity,
		MinimumStock:  p.MinimumStock,
		SupplierID:    p.SupplierID,
		Location:      p.Location,
		IsActive:      p.IsActive,
		IsLowStock:    p.IsLowStock(),
		StockValue:    p.StockValue().Round(2).InexactFloat64(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Supplier != nil {
		resp.Supplier = &SupplierSummary{ID: p.Supplier.ID, Name: p.Supplier.Name, Email: p.Supplier.Email}
	}
	return resp
}

func toProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

func toTransactionResponse(t models.StockTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		ProductID:       t.ProductID,
		ProductSKU:      t.ProductSKU,
		ProductName:     t.ProductName,
		Type:            t.Type,
		Quantity:        t.Quantity,
		Reference:       t.Reference,
		Notes:           t.Notes,
		TransactionDate: t.TransactionDate,
		PerformedBy:     t.PerformedBy,
	}
}

func toTransactionResponses(txns []models.StockTransaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		out[i] = toTransactionResponse(t)
	}
	return out
}

func toSupplierResponse(s models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}

func toReorderResponse(s reorder.Suggestion) ReorderSuggestionResponse {
	resp := ReorderSuggestionResponse{
		ID:                     s.ProductID,
		SKU:                    s.SKU,
		Name:                   s.Name,
		Category:               s.Category,
		CurrentStock:           s.CurrentStock,
		MinimumStock:           s.MinimumStock,
		Deficit:                s.Deficit,
		SuggestedOrderQuantity: s.SuggestedOrderQuantity,
		EstimatedCost:          s.EstimatedCost.InexactFloat64(),
		Priority:               s.Priority,
	}
	if s.Supplier != nil {
		resp.Supplier = &SupplierSummary{ID: s.Supplier.ID, Name: s.Supplier.Name, Email: s.Supplier.Email}
	}
	return resp
}

func toMetricsResponse(m repo.Metrics) MetricsResponse {
	dist := m.CategoryDistribution
	if dist == nil {
		dist = map[string]int{}
	}
	return MetricsResponse{
		TotalProducts:        m.TotalProducts,
		TotalItems:           m.TotalItems,
		TotalValue:           m.TotalValue.Round(2).InexactFloat64(),
		LowStockCount:        m.LowStockCount,
		TotalTransactions:    m.TotalTransactions,
		CategoryDistribution: dist,
		MostMovedProduct: MostMovedProduct{
			Name:          m.MostMovedProduct.Name,
			MovementCount: m.MostMovedProduct.MovementCount,
		},
	}
}
