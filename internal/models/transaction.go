package models

import "time"

// TransactionType classifies a stock movement.
type TransactionType string

const (
	TransactionPurchase   TransactionType = "Purchase"
	TransactionSale       TransactionType = "Sale"
	TransactionAdjustment TransactionType = "Adjustment"
	TransactionReturn     TransactionType = "Return"
)

// TransactionTypes lists every known type in display order.
var TransactionTypes = []TransactionType{
	TransactionPurchase,
	TransactionSale,
	TransactionAdjustment,
	TransactionReturn,
}

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	for _, known := range TransactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// StockTransaction is an append-only record of a change in stock.
// Quantity holds the signed delta that was applied.
type StockTransaction struct {
	ID              int             `json:"id"`
	ProductID       int             `json:"product_id"`
	Type            TransactionType `json:"type"`
	Quantity        int             `json:"quantity"`
	Reference       string          `json:"reference,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	PerformedBy     string          `json:"performed_by"`

	// Product snapshot, filled by list queries.
	ProductSKU  string `json:"product_sku,omitempty"`
	ProductName string `json:"product_name,omitempty"`
}
