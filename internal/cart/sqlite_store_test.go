package cart

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karibu-retail/storefront-gateway/pkg/types"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "carts.db"), nil)
	require.NoError(t, err)
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	var c Cart
	c.Add(types.VariantSelection{
		VariantID:    "v-1",
		ProductName:  "Honey",
		SellingPrice: decimal.RequireFromString("19.99"),
	}, 2)

	require.NoError(t, store.Save(ctx, "client-a", c))

	loaded, err := store.Load(ctx, "client-a")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.Items[0].CustomerQuantity)
	assert.True(t, loaded.Items[0].SellingPrice.Equal(decimal.RequireFromString("19.99")))
}

func TestSQLiteStoreMissingClientIsEmpty(t *testing.T) {
	store := setupSQLiteStore(t)

	loaded, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestSQLiteStoreCorruptPayloadLoadsEmpty(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	row := cartRow{ClientID: "client-a", Payload: []byte("{not json")}
	require.NoError(t, store.db.Save(&row).Error)

	loaded, err := store.Load(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestSQLiteStoreClear(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	var c Cart
	c.Add(types.VariantSelection{VariantID: "v-1", ProductName: "Honey"}, 1)
	require.NoError(t, store.Save(ctx, "client-a", c))
	require.NoError(t, store.Clear(ctx, "client-a"))

	loaded, err := store.Load(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}
