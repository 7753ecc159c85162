package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/pkg/clock"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func newCart() *MemoryCart {
	return NewMemoryCart(clock.NewFake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMemoryCartUpsertMergesSameLine(t *testing.T) {
	s := newCart()
	ctx := context.Background()

	first, err := s.Upsert(ctx, models.CartItem{SessionID: "a", ProductID: 1, Quantity: 1, SelectedColor: strPtr("Navy"), SelectedSize: strPtr("M")})
	require.NoError(t, err)
	second, err := s.Upsert(ctx, models.CartItem{SessionID: "a", ProductID: 1, Quantity: 2, SelectedColor: strPtr("Navy"), SelectedSize: strPtr("M")})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	items, err := s.Items(ctx, "a")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestMemoryCartUpsertKeepsDistinctLines(t *testing.T) {
	s := newCart()
	ctx := context.Background()

	lines := []models.CartItem{
		{SessionID: "a", ProductID: 1, Quantity: 1, SelectedColor: strPtr("Navy"), SelectedSize: strPtr("M")},
		{SessionID: "a", ProductID: 1, Quantity: 1, SelectedColor: strPtr("Navy"), SelectedSize: strPtr("L")},
		{SessionID: "a", ProductID: 1, Quantity: 1, SelectedColor: nil, SelectedSize: strPtr("M")},
		{SessionID: "b", ProductID: 1, Quantity: 1, SelectedColor: strPtr("Navy"), SelectedSize: strPtr("M")},
	}
	for _, line := range lines {
		_, err := s.Upsert(ctx, line)
		require.NoError(t, err)
	}

	a, err := s.Items(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, a, 3)

	b, err := s.Items(ctx, "b")
	require.NoError(t, err)
	assert.Len(t, b, 1)
}

func TestMemoryCartConcurrentUpsertProducesOneRow(t *testing.T) {
	s := newCart()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Upsert(ctx, models.CartItem{SessionID: "race", ProductID: 7, Quantity: 1, SelectedSize: strPtr("S")})
		}()
	}
	wg.Wait()

	items, err := s.Items(ctx, "race")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].Quantity)
}

func TestMemoryCartUpdate(t *testing.T) {
	s := newCart()
	ctx := context.Background()

	item, err := s.Upsert(ctx, models.CartItem{SessionID: "a", ProductID: 1, Quantity: 1, SelectedSize: strPtr("M")})
	require.NoError(t, err)

	updated, err := s.Update(ctx, item.ID, models.CartItemPatch{Quantity: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, "M", *updated.SelectedSize)

	_, err = s.Update(ctx, 404, models.CartItemPatch{Quantity: intPtr(1)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCartUpdateMergesIntoExistingLine(t *testing.T) {
	s := newCart()
	ctx := context.Background()

	medium, err := s.Upsert(ctx, models.CartItem{SessionID: "a", ProductID: 1, Quantity: 2, SelectedSize: strPtr("M")})
	require.NoError(t, err)
	large, err := s.Upsert(ctx, models.CartItem{SessionID: "a", ProductID: 1, Quantity: 1, SelectedSize: strPtr("L")})
	require.NoError(t, err)

	merged, err := s.Update(ctx, large.ID, models.CartItemPatch{SelectedSize: strPtr("M")})
	require.NoError(t, err)
	assert.Equal(t, medium.ID, merged.ID)
	assert.Equal(t, 3, merged.Quantity)

	items, err := s.Items(ctx, "a")
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = s.Get(ctx, large.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCartRemoveAndClear(t *testing.T) {
	s := newCart()
	ctx := context.Background()

	a1, _ := s.Upsert(ctx, models.CartItem{SessionID: "a", ProductID: 1, Quantity: 1})
	_, _ = s.Upsert(ctx, models.CartItem{SessionID: "a", ProductID: 2, Quantity: 1})
	_, _ = s.Upsert(ctx, models.CartItem{SessionID: "b", ProductID: 1, Quantity: 4})

	removed, err := s.Remove(ctx, a1.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove(ctx, a1.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, s.Clear(ctx, "a"))
	a, _ := s.Items(ctx, "a")
	assert.Empty(t, a)

	b, _ := s.Items(ctx, "b")
	require.Len(t, b, 1)
	assert.Equal(t, 4, b[0].Quantity)

	require.NoError(t, s.Clear(ctx, "nobody"))
}
