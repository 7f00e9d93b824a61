package service

import (
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/testutil"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartLifecycle(t *testing.T) {
	f := newFixture(t)
	small := testutil.CreateItem(t, f.db, "LPG 3 kg", 20000)
	big := testutil.CreateItem(t, f.db, "LPG 12 kg", 195000)

	cart, err := f.services.Cart.Get(f.ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, decimal.Zero.Equal(cart.Subtotal))

	f.addToCart(t, buyer, small.ID, 2)
	f.addToCart(t, buyer, big.ID, 1)
	cart, err = f.services.Cart.AddItem(f.ctx, buyer.ID, dto.AddCartItemRequest{ItemID: small.ID, Qty: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, int64(3), cart.Items[0].Qty)
	assert.True(t, decimal.NewFromInt(3*20000+195000).Equal(cart.Subtotal))

	cart, err = f.services.Cart.UpdateItem(f.ctx, buyer.ID, big.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), cart.Items[1].Qty)

	cart, err = f.services.Cart.RemoveItem(f.ctx, buyer.ID, small.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, big.ID, cart.Items[0].ItemID)

	require.NoError(t, f.services.Cart.Clear(f.ctx, buyer.ID))
	cart, err = f.services.Cart.Get(f.ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartValidation(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateItem(t, f.db, "LPG 3 kg", 20000)

	_, err := f.services.Cart.AddItem(f.ctx, buyer.ID, dto.AddCartItemRequest{ItemID: item.ID, Qty: 0})
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)

	_, err = f.services.Cart.AddItem(f.ctx, buyer.ID, dto.AddCartItemRequest{ItemID: "missing", Qty: 1})
	assert.ErrorIs(t, err, model.ErrItemNotFound)

	_, err = f.services.Cart.UpdateItem(f.ctx, buyer.ID, item.ID, 2)
	assert.ErrorIs(t, err, model.ErrCartItemNotFound)

	_, err = f.services.Cart.RemoveItem(f.ctx, buyer.ID, item.ID)
	assert.ErrorIs(t, err, model.ErrCartItemNotFound)

	require.NoError(t, f.db.Model(item).Update("status", model.ItemInactive).Error)
	_, err = f.services.Cart.AddItem(f.ctx, buyer.ID, dto.AddCartItemRequest{ItemID: item.ID, Qty: 1})
	assert.ErrorIs(t, err, model.ErrItemInactive)
}
