package store

import (
	"context"
	"sync"

	"storefront/internal/models"
	"storefront/internal/pkg/clock"
)

// MemoryCart keeps cart items in process memory. Every mutation runs inside a
// single critical section, so merge-on-add cannot race into duplicate rows.
type MemoryCart struct {
	mu     sync.RWMutex
	clock  clock.Clock
	nextID int
	order  []int
	items  map[int]models.CartItem
}

func NewMemoryCart(c clock.Clock) *MemoryCart {
	if c == nil {
		c = clock.RealClock{}
	}
	return &MemoryCart{
		clock:  c,
		nextID: 1,
		items:  make(map[int]models.CartItem),
	}
}

func (s *MemoryCart) Items(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.CartItem, 0)
	for _, id := range s.order {
		if item := s.items[id]; item.SessionID == sessionID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *MemoryCart) Get(ctx context.Context, id int) (models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return models.CartItem{}, ErrNotFound
	}
	return item, nil
}

func (s *MemoryCart) Upsert(ctx context.Context, item models.CartItem) (models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.findLine(item, 0); ok {
		existing.Quantity += item.Quantity
		s.items[existing.ID] = existing
		return existing, nil
	}

	item.ID = s.nextID
	item.CreatedAt = s.clock.Now()
	s.nextID++

	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
	return item, nil
}

func (s *MemoryCart) Update(ctx context.Context, id int, patch models.CartItemPatch) (models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return models.CartItem{}, ErrNotFound
	}

	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.SelectedColor != nil {
		item.SelectedColor = models.OptionalString(patch.SelectedColor)
	}
	if patch.SelectedSize != nil {
		item.SelectedSize = models.OptionalString(patch.SelectedSize)
	}

	if other, clash := s.findLine(item, item.ID); clash {
		other.Quantity += item.Quantity
		s.items[other.ID] = other
		s.deleteLocked(item.ID)
		return other, nil
	}

	s.items[id] = item
	return item, nil
}

func (s *MemoryCart) Remove(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	s.deleteLocked(id)
	return true, nil
}

func (s *MemoryCart) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.order[:0]
	for _, id := range s.order {
		if s.items[id].SessionID == sessionID {
			delete(s.items, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return nil
}

func (s *MemoryCart) Ping(ctx context.Context) error {
	return nil
}

// findLine returns the item occupying the same slot as item, skipping the
// item with id skip. Callers hold s.mu.
func (s *MemoryCart) findLine(item models.CartItem, skip int) (models.CartItem, bool) {
	for _, id := range s.order {
		if id == skip {
			continue
		}
		if existing := s.items[id]; existing.SameLine(item) {
			return existing, true
		}
	}
	return models.CartItem{}, false
}

func (s *MemoryCart) deleteLocked(id int) {
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
