package store

import (
	"context"
	"strings"
	"sync"

	"storefront/internal/models"
	"storefront/internal/pkg/clock"
)

// MemoryProducts keeps the catalog in process memory, in insertion order.
type MemoryProducts struct {
	mu     sync.RWMutex
	clock  clock.Clock
	nextID int
	order  []int
	byID   map[int]models.Product
	bySKU  map[string]int
}

func NewMemoryProducts(c clock.Clock) *MemoryProducts {
	if c == nil {
		c = clock.RealClock{}
	}
	return &MemoryProducts{
		clock:  c,
		nextID: 1,
		byID:   make(map[int]models.Product),
		bySKU:  make(map[string]int),
	}
}

func (s *MemoryProducts) All(ctx context.Context) ([]models.Product, error) {
	return s.filter(func(models.Product) bool { return true }), nil
}

func (s *MemoryProducts) GetByID(ctx context.Context, id int) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.byID[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return product, nil
}

func (s *MemoryProducts) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.filter(func(p models.Product) bool {
		return strings.EqualFold(p.Category, category)
	}), nil
}

func (s *MemoryProducts) Search(ctx context.Context, query string) ([]models.Product, error) {
	return s.filter(func(p models.Product) bool {
		return p.MatchesQuery(query)
	}), nil
}

func (s *MemoryProducts) Create(ctx context.Context, product models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sku := strings.TrimSpace(product.SKU)
	if _, exists := s.bySKU[sku]; exists {
		return models.Product{}, ErrDuplicateSKU
	}

	product.ID = s.nextID
	product.SKU = sku
	product.CreatedAt = s.clock.Now()
	s.nextID++

	s.byID[product.ID] = product
	s.bySKU[sku] = product.ID
	s.order = append(s.order, product.ID)
	return product, nil
}

func (s *MemoryProducts) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

func (s *MemoryProducts) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryProducts) filter(keep func(models.Product) bool) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, len(s.order))
	for _, id := range s.order {
		if p := s.byID[id]; keep(p) {
			products = append(products, p)
		}
	}
	return products
}
