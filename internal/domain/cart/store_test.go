package cart

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestStore(t *testing.T) (*Store, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	return NewStore(context.Background(), backend, "", testLogger()), backend
}

func TestAddToCartNewItem(t *testing.T) {
	store, _ := newTestStore(t)

	added := store.AddToCart(context.Background(), Item{ID: 1, Title: "Abbey Road", Price: 120, Stock: 5}, 1)

	require.True(t, added)
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestAddToCartIncrementsExistingLine(t *testing.T) {
	store, _ := newTestStore(t)
	item := Item{ID: 1, Title: "Abbey Road", Price: 120, Stock: 5}

	store.AddToCart(context.Background(), item, 1)
	added := store.AddToCart(context.Background(), item, 1)

	require.True(t, added)
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddToCartRespectsStockCeiling(t *testing.T) {
	store, _ := newTestStore(t)
	item := Item{ID: 1, Title: "Abbey Road", Price: 120, Stock: 2}

	require.True(t, store.AddToCart(context.Background(), item, 1))
	require.True(t, store.AddToCart(context.Background(), item, 1))

	added := store.AddToCart(context.Background(), item, 1)

	assert.False(t, added)
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity, "cart must not change on a rejected add")
}

func TestUpdateQuantityReplacesValue(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddToCart(context.Background(), Item{ID: 1, Price: 50, Stock: 10}, 1)

	ok := store.UpdateQuantity(context.Background(), 1, 4)

	require.True(t, ok)
	assert.Equal(t, 4, store.Items()[0].Quantity)
}

func TestUpdateQuantityBelowOneRemovesLine(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddToCart(context.Background(), Item{ID: 1, Price: 50, Stock: 10}, 1)

	ok := store.UpdateQuantity(context.Background(), 1, 0)

	require.True(t, ok)
	assert.Empty(t, store.Items())
}

func TestUpdateQuantityRejectsAboveStock(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddToCart(context.Background(), Item{ID: 1, Price: 50, Stock: 3}, 1)

	ok := store.UpdateQuantity(context.Background(), 1, 4)

	assert.False(t, ok)
	assert.Equal(t, 1, store.Items()[0].Quantity)
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	store, _ := newTestStore(t)

	assert.False(t, store.UpdateQuantity(context.Background(), 99, 2))
}

func TestRemoveFromCartIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddToCart(context.Background(), Item{ID: 1, Price: 50, Stock: 3}, 1)

	store.RemoveFromCart(context.Background(), 1)
	store.RemoveFromCart(context.Background(), 1)
	store.RemoveFromCart(context.Background(), 99)

	assert.Empty(t, store.Items())
}

func TestTotalAndCountFoldOverLines(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddToCart(context.Background(), Item{ID: 1, Price: 50.00, Stock: 10}, 1)
	store.AddToCart(context.Background(), Item{ID: 1, Price: 50.00, Stock: 10}, 1)
	store.AddToCart(context.Background(), Item{ID: 2, Price: 30.50, Stock: 10}, 1)

	assert.InDelta(t, 130.50, store.Total(), 0.001)
	assert.Equal(t, 3, store.Count())
}

func TestEmptyCartTotals(t *testing.T) {
	store, _ := newTestStore(t)

	assert.Zero(t, store.Total())
	assert.Zero(t, store.Count())
	assert.Empty(t, store.Items())
}

func TestSnapshotRoundTrip(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	first := NewStore(ctx, backend, "cart:session:abc", testLogger())
	first.AddToCart(ctx, Item{ID: 1, Title: "Rumours", Price: 105, Stock: 8}, 1)
	first.AddToCart(ctx, Item{ID: 1, Title: "Rumours", Price: 105, Stock: 8}, 1)

	second := NewStore(ctx, backend, "cart:session:abc", testLogger())

	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Rumours", items[0].Title)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 210, second.Total(), 0.001)
}

func TestCorruptSnapshotStartsEmpty(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, StorageKey, "{not json"))

	store := NewStore(ctx, backend, "", testLogger())

	assert.Empty(t, store.Items())
}

func TestClearCartPersistsEmptySnapshot(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	store := NewStore(ctx, backend, "", testLogger())
	store.AddToCart(ctx, Item{ID: 1, Price: 10, Stock: 5}, 1)
	store.ClearCart(ctx)

	data, err := backend.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", data)
}
