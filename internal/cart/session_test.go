package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return Open(context.Background(), store, "session-1"), store
}

func watchItem(id string, price float64) Item {
	return Item{ID: id, Title: "Submariner", Brand: "Rolex", Price: price}
}

func TestAddItemIncrementsExisting(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s.AddItem(ctx, watchItem("w1", 100))
	}

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 3, s.TotalItems())
}

func TestAddItemSnapshotsPriceAtAddTime(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	s.AddItem(ctx, watchItem("w1", 100))
	// a later add with a different price does not reprice the entry
	s.AddItem(ctx, watchItem("w1", 250))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 100.0, items[0].Price)
	assert.Equal(t, 200.0, s.TotalPrice())
}

func TestUpdateQuantityToZeroEqualsRemove(t *testing.T) {
	ctx := context.Background()

	left, _ := newTestSession(t)
	left.AddItem(ctx, watchItem("w1", 100))
	left.AddItem(ctx, watchItem("w2", 50))
	left.UpdateQuantity(ctx, "w1", 0)

	right, _ := newTestSession(t)
	right.AddItem(ctx, watchItem("w1", 100))
	right.AddItem(ctx, watchItem("w2", 50))
	right.RemoveItem(ctx, "w1")

	assert.Equal(t, right.Items(), left.Items())
	assert.False(t, left.Contains("w1"))
	assert.Equal(t, 1, left.TotalItems())
}

func TestUpdateQuantityClampsNegative(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	s.AddItem(ctx, watchItem("w1", 100))
	s.UpdateQuantity(ctx, "w1", -5)

	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Quantity("w1"))
}

func TestTotalPriceSumsPriceTimesQuantity(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	s.AddItem(ctx, watchItem("w1", 4200))
	s.AddItem(ctx, watchItem("w2", 99.5))
	s.UpdateQuantity(ctx, "w2", 4)

	assert.Equal(t, 4200.0+99.5*4, s.TotalPrice())
	assert.Equal(t, 5, s.TotalItems())
}

func TestClearEmptiesCart(t *testing.T) {
	s, store := newTestSession(t)
	ctx := context.Background()

	s.AddItem(ctx, watchItem("w1", 100))
	s.Clear(ctx)

	assert.Empty(t, s.Items())
	assert.Equal(t, 0.0, s.TotalPrice())

	reopened := Open(ctx, store, "session-1")
	assert.Empty(t, reopened.Items())
}

func TestSelectors(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	s.AddItem(ctx, watchItem("w1", 100))
	s.AddItem(ctx, watchItem("w1", 100))

	assert.True(t, s.Contains("w1"))
	assert.False(t, s.Contains("w2"))
	assert.Equal(t, 2, s.Quantity("w1"))
	assert.Equal(t, 0, s.Quantity("w2"))
}

func TestExampleScenarioAddExistingWatch(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	s.AddItem(ctx, watchItem("w1", 100))
	s.AddItem(ctx, watchItem("w1", 100))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 200.0, s.TotalPrice())
}
