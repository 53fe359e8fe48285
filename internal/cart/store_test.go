package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	items := []Item{
		{ID: "w1", Title: "Speedmaster", Brand: "Omega", Price: 5200, Quantity: 1},
		{ID: "w2", Title: "Tank", Brand: "Cartier", Price: 3100, Quantity: 3, Condition: "pre-owned"},
	}
	require.NoError(t, store.Save(ctx, "k", items))

	loaded, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func TestLoadMissingKeyReturnsEmpty(t *testing.T) {
	store := NewMemoryStore()

	loaded, err := store.Load(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestCorruptPayloadFailsOpen(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", []Item{{ID: "w1", Price: 100, Quantity: 1}}))
	store.Corrupt("k")

	_, err := store.Load(ctx, "k")
	assert.Error(t, err)

	// Open treats the decode error as an empty cart rather than failing
	s := Open(ctx, store, "k")
	assert.Empty(t, s.Items())
}

func TestUnsupportedSchemaVersionRejected(t *testing.T) {
	store := NewMemoryStore()
	store.mu.Lock()
	store.data["k"] = []byte(`{"schemaVersion":99,"items":[]}`)
	store.mu.Unlock()

	_, err := store.Load(context.Background(), "k")
	assert.Error(t, err)
}

func TestDeleteRemovesCart(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", []Item{{ID: "w1", Price: 100, Quantity: 1}}))
	require.NoError(t, store.Delete(ctx, "k"))

	loaded, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
