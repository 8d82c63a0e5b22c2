package repo

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

type InMemorySupplierRepository struct {
	mu        sync.Mutex
	suppliers []models.Supplier
	nextID    int
}

func NewInMemorySupplierRepository() *InMemorySupplierRepository {
	return &InMemorySupplierRepository{
		suppliers: []models.Supplier{},
		nextID:    1,
	}
}

func (r *InMemorySupplierRepository) Create(_ context.Context, s models.Supplier) (models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = r.nextID
	r.nextID++
	r.suppliers = append(r.suppliers, s)
	return s, nil
}

func (r *InMemorySupplierRepository) GetAll(_ context.Context) ([]models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Supplier, len(r.suppliers))
	copy(out, r.suppliers)
	return out, nil
}

func (r *InMemorySupplierRepository) ListActive(_ context.Context) ([]models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := []models.Supplier{}
	for _, s := range r.suppliers {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return active, nil
}

func (r *InMemorySupplierRepository) GetByID(_ context.Context, id int) (models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.suppliers {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Supplier{}, ErrSupplierNotFound
}

func (r *InMemorySupplierRepository) Update(_ context.Context, s models.Supplier) (models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.suppliers {
		if existing.ID == s.ID {
			r.suppliers[i] = s
			return s, nil
		}
	}
	return models.Supplier{}, ErrSupplierNotFound
}

func (r *InMemorySupplierRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.suppliers {
		if s.ID == id {
			r.suppliers = append(r.suppliers[:i], r.suppliers[i+1:]...)
			return nil
		}
	}
	return ErrSupplierNotFound
}
