// Package store defines the product and cart persistence contracts and their
// in-memory implementations. The MongoDB implementations live in
// internal/database.
package store

import (
	"context"
	"errors"

	"storefront/internal/models"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateSKU = errors.New("duplicate sku")
)

type ProductStore interface {
	All(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	ByCategory(ctx context.Context, category string) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	Create(ctx context.Context, product models.Product) (models.Product, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

type CartStore interface {
	Items(ctx context.Context, sessionID string) ([]models.CartItem, error)
	Get(ctx context.Context, id int) (models.CartItem, error)
	// Upsert inserts item, or adds item.Quantity to the existing item that
	// occupies the same (session, product, color, size) slot.
	Upsert(ctx context.Context, item models.CartItem) (models.CartItem, error)
	// Update applies patch. When the patched item lands on a slot already held
	// by another item of the session, the two are merged into the other item.
	Update(ctx context.Context, id int, patch models.CartItemPatch) (models.CartItem, error)
	Remove(ctx context.Context, id int) (bool, error)
	Clear(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}
