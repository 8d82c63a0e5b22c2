package repo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu           sync.Mutex
	products     []models.Product
	nextID       int
	transactions *InMemoryTransactionRepository
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
// Stock adjustments are journaled into transactions.
func NewInMemoryProductRepository(transactions *InMemoryTransactionRepository) *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products:     []models.Product{},
		nextID:       1,
		transactions: transactions,
	}
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Name)) {
		return false
	}
	if pf.Category != "" && !strings.EqualFold(p.Category, pf.Category) {
		return false
	}
	if pf.SupplierID != nil && p.SupplierID != *pf.SupplierID {
		return false
	}
	if pf.MinPrice != nil && p.Price.InexactFloat64() < *pf.MinPrice {
		return false
	}
	if pf.MaxPrice != nil && p.Price.InexactFloat64() > *pf.MaxPrice {
		return false
	}
	if pf.MinQty != nil && p.StockQuantity < *pf.MinQty {
		return false
	}
	if pf.MaxQty != nil && p.StockQuantity > *pf.MaxQty {
		return false
	}
	if pf.LowStock != nil && p.IsLowStock() != *pf.LowStock {
		return false
	}
	if pf.Active != nil && p.IsActive != *pf.Active {
		return false
	}
	return true
}

func (r *InMemoryProductRepository) Filter(_ context.Context, pf ProductFilter) ([]models.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := []models.Product{}
	for _, p := range r.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}

	items, total := page(filtered, pf.Offset, pf.Limit)
	return items, total, nil
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if strings.EqualFold(p.SKU, product.SKU) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}

	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves all products from the repository.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}
	return r.products[i], nil
}

func (r *InMemoryProductRepository) GetBySKU(_ context.Context, sku string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if strings.EqualFold(p.SKU, sku) {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update writes the editable fields of product. SKU, stock quantity and
// creation time keep their stored values; stock only moves through AdjustStock.
func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(product.ID)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}

	stored := r.products[i]
	stored.Name = product.Name
	stored.Description = product.Description
	stored.Category = product.Category
	stored.Price = product.Price
	stored.MinimumStock = product.MinimumStock
	stored.SupplierID = product.SupplierID
	stored.Location = product.Location
	stored.IsActive = product.IsActive
	stored.UpdatedAt = product.UpdatedAt
	r.products[i] = stored
	return stored, nil
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrProductNotFound
	}
	r.products = append(r.products[:i], r.products[i+1:]...)
	return nil
}

func (r *InMemoryProductRepository) CountBySupplier(_ context.Context, supplierID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, p := range r.products {
		if p.SupplierID == supplierID {
			count++
		}
	}
	return count, nil
}

// AdjustStock implements ProductRepository.
func (r *InMemoryProductRepository) AdjustStock(ctx context.Context, productID, delta int, txn models.StockTransaction) (models.Product, models.StockTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(productID)
	if i < 0 || !r.products[i].IsActive {
		return models.Product{}, models.StockTransaction{}, ErrProductNotFound
	}

	product := r.products[i]
	if product.StockQuantity+delta < 0 {
		return models.Product{}, models.StockTransaction{}, ErrInsufficientStock
	}

	txn.ProductID = productID
	txn.Quantity = delta
	recorded, err := r.transactions.Append(ctx, txn)
	if err != nil {
		return models.Product{}, models.StockTransaction{}, err
	}

	product.StockQuantity += delta
	product.UpdatedAt = time.Now().UTC()
	r.products[i] = product
	return product, recorded, nil
}

func (r *InMemoryProductRepository) indexOf(id int) int {
	for i, p := range r.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
