package repository

import (
	"context"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartUpsertItemAccumulates(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	first := testutil.CreateItem(t, db, "LPG 3 kg", 20000)
	second := testutil.CreateItem(t, db, "LPG 12 kg", 195000)

	cart, err := repo.GetOrCreate(ctx, nil, "user-1")
	require.NoError(t, err)
	again, err := repo.GetOrCreate(ctx, nil, "user-1")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	require.NoError(t, repo.UpsertItem(ctx, nil, cart.ID, first.ID, 2))
	require.NoError(t, repo.UpsertItem(ctx, nil, cart.ID, second.ID, 1))
	require.NoError(t, repo.UpsertItem(ctx, nil, cart.ID, first.ID, 3))

	cart, err = repo.FindByUser(ctx, nil, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, first.ID, cart.Items[0].ItemID)
	assert.Equal(t, int64(5), cart.Items[0].Qty)
	require.NotNil(t, cart.Items[0].Item)
	assert.Equal(t, "LPG 3 kg", cart.Items[0].Item.Name)
	assert.Equal(t, second.ID, cart.Items[1].ItemID)

	require.NoError(t, repo.Clear(ctx, nil, cart.ID))
	cart, err = repo.FindByUser(ctx, nil, "user-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartMissingLines(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	_, err := repo.FindByUser(ctx, nil, "nobody")
	assert.ErrorIs(t, err, model.ErrCartNotFound)

	cart, err := repo.GetOrCreate(ctx, nil, "user-1")
	require.NoError(t, err)

	assert.ErrorIs(t, repo.SetItemQty(ctx, nil, cart.ID, "missing", 2), model.ErrCartItemNotFound)
	assert.ErrorIs(t, repo.RemoveItem(ctx, nil, cart.ID, "missing"), model.ErrCartItemNotFound)
}
