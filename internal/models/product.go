package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a stock-keeping unit held in the warehouse.
type Product struct {
	ID            int             `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	MinimumStock  int             `json:"minimum_stock"`
	SupplierID    int             `json:"supplier_id"`
	Location      string          `json:"location"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Supplier is a read-side snapshot; repositories fill it when listing.
	Supplier *Supplier `json:"supplier,omitempty"`
}

// IsLowStock reports whether the product sits at or below its minimum stock.
// It is always derived and never persisted.
func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinimumStock
}

// StockValue is price times units on hand.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}
