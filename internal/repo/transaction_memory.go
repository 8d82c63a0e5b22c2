package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

type InMemoryTransactionRepository struct {
	mu           sync.Mutex
	transactions []models.StockTransaction
}

func NewInMemoryTransactionRepository() *InMemoryTransactionRepository {
	return &InMemoryTransactionRepository{
		transactions: []models.StockTransaction{},
	}
}

// Append records a transaction. A zero TransactionDate is stamped with the current time.
func (r *InMemoryTransactionRepository) Append(_ context.Context, txn models.StockTransaction) (models.StockTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	txn.ID = len(r.transactions) + 1
	if txn.TransactionDate.IsZero() {
		txn.TransactionDate = time.Now().UTC()
	}
	r.transactions = append(r.transactions, txn)
	return txn, nil
}

// List returns transactions newest first, optionally filtered by product, type and date range, and paginated.
func (r *InMemoryTransactionRepository) List(_ context.Context, tf TransactionFilter) ([]models.StockTransaction, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := []models.StockTransaction{}
	for _, t := range r.transactions {
		if tf.ProductID != nil && t.ProductID != *tf.ProductID {
			continue
		}
		if tf.Type != "" && t.Type != tf.Type {
			continue
		}
		if (tf.Since != nil && t.TransactionDate.Before(*tf.Since)) ||
			(tf.Until != nil && t.TransactionDate.After(*tf.Until)) {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].TransactionDate.Equal(filtered[j].TransactionDate) {
			return filtered[i].ID > filtered[j].ID
		}
		return filtered[i].TransactionDate.After(filtered[j].TransactionDate)
	})

	items, total := page(filtered, tf.Offset, tf.Limit)
	return items, total, nil
}

func (r *InMemoryTransactionRepository) CountByProduct(_ context.Context, productID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, t := range r.transactions {
		if t.ProductID == productID {
			count++
		}
	}
	return count, nil
}
