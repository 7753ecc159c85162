// Package cart implements session-scoped shopping carts on top of the cart
// and product stores.
package cart

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/store"
)

const DefaultSessionID = "default-session"

var ErrItemNotFound = errors.New("cart item not found")

type Service struct {
	items    store.CartStore
	products store.ProductStore
	pricing  Pricing
}

func NewService(items store.CartStore, products store.ProductStore, pricing Pricing) *Service {
	return &Service{items: items, products: products, pricing: pricing}
}

// Summary is a cart together with its derived totals.
type Summary struct {
	Items  []models.CartItemWithProduct `json:"items"`
	Totals Totals                       `json:"totals"`
}

// UpdateResult tells callers whether an update removed the item.
type UpdateResult struct {
	Item    models.CartItem
	Removed bool
}

// Items returns the session's items joined to their products. Items whose
// product cannot be resolved are left out.
func (s *Service) Items(ctx context.Context, sessionID string) ([]models.CartItemWithProduct, error) {
	items, err := s.items.Items(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}

	joined := make([]models.CartItemWithProduct, 0, len(items))
	for _, item := range items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			zap.L().Debug("dropping orphaned cart item",
				zap.Int("itemId", item.ID),
				zap.Int("productId", item.ProductID),
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve product %d: %w", item.ProductID, err)
		}
		joined = append(joined, models.CartItemWithProduct{CartItem: item, Product: product})
	}
	return joined, nil
}

func (s *Service) Summary(ctx context.Context, sessionID string) (Summary, error) {
	items, err := s.Items(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Items: items, Totals: s.pricing.Calculate(items)}, nil
}

// AddItem puts quantity units of a product variant in the cart, merging with
// an existing line for the same variant. A quantity below one counts as one.
func (s *Service) AddItem(ctx context.Context, sessionID string, productID int, color, size *string, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}
	item, err := s.items.Upsert(ctx, models.CartItem{
		SessionID:     sessionID,
		ProductID:     productID,
		Quantity:      quantity,
		SelectedColor: models.OptionalString(color),
		SelectedSize:  models.OptionalString(size),
	})
	if err != nil {
		return models.CartItem{}, fmt.Errorf("add cart item: %w", err)
	}
	return item, nil
}

// UpdateQuantity overwrites the quantity of an item; a quantity of zero or
// less removes it.
func (s *Service) UpdateQuantity(ctx context.Context, id, quantity int) (UpdateResult, error) {
	return s.UpdateItem(ctx, id, models.CartItemPatch{Quantity: &quantity})
}

// UpdateItem applies a partial update. A quantity of zero or less removes the
// item regardless of the other fields.
func (s *Service) UpdateItem(ctx context.Context, id int, patch models.CartItemPatch) (UpdateResult, error) {
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		removed, err := s.RemoveItem(ctx, id)
		if err != nil {
			return UpdateResult{}, err
		}
		if !removed {
			return UpdateResult{}, ErrItemNotFound
		}
		return UpdateResult{Removed: true}, nil
	}

	item, err := s.items.Update(ctx, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return UpdateResult{}, ErrItemNotFound
	}
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update cart item %d: %w", id, err)
	}
	return UpdateResult{Item: item}, nil
}

func (s *Service) RemoveItem(ctx context.Context, id int) (bool, error) {
	removed, err := s.items.Remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("remove cart item %d: %w", id, err)
	}
	return removed, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.items.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart %q: %w", sessionID, err)
	}
	return nil
}

func (s *Service) Pricing() Pricing {
	return s.pricing
}

// Ping reports whether the cart store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.items.Ping(ctx)
}
