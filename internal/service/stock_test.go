package service

import (
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWithHistoryRecordsSnapshots(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateItem(t, f.db, "LPG 12 kg", 195000)

	result, err := f.services.Stock.AddWithHistory(f.ctx, admin, dto.StockChangeRequest{
		ItemID:   item.ID,
		Quantity: 12,
		Type:     model.MovementIn,
		Reason:   model.ReasonRestock,
		Note:     "truck 7",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.PreviousStock)
	assert.Equal(t, int64(12), result.NewStock)
	require.NotNil(t, result.History)
	assert.Equal(t, result.Stock.ID, result.History.MovementID)
	assert.Equal(t, model.ReferenceManual, result.History.ReferenceType)
	assert.Equal(t, admin, result.History.PerformedBy)

	result, err = f.services.Stock.AddWithHistory(f.ctx, admin, dto.StockChangeRequest{
		ItemID:   item.ID,
		Quantity: 2,
		Type:     model.MovementOut,
		Reason:   model.ReasonDamaged,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), result.PreviousStock)
	assert.Equal(t, int64(10), result.NewStock)
	assert.Equal(t, int64(10), f.stock(t, item.ID))
}

func TestAddWithHistoryRejectsOverdraw(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateItem(t, f.db, "LPG 3 kg", 20000)
	testutil.Restock(t, f.db, item.ID, 2)

	_, err := f.services.Stock.AddWithHistory(f.ctx, admin, dto.StockChangeRequest{
		ItemID:   item.ID,
		Quantity: 3,
		Type:     model.MovementOut,
		Reason:   model.ReasonDamaged,
	})

	var stockErr *model.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(3), stockErr.Requested)
	assert.Equal(t, int64(1), testutil.Count(t, f.db, &model.StockMovement{}))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &model.StockHistory{}))
}

func TestAddWithHistoryValidation(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateItem(t, f.db, "LPG 3 kg", 20000)

	tests := []struct {
		name string
		req  dto.StockChangeRequest
		want error
	}{
		{"zero quantity", dto.StockChangeRequest{ItemID: item.ID, Quantity: 0, Type: model.MovementIn, Reason: model.ReasonRestock}, model.ErrInvalidQuantity},
		{"bad type", dto.StockChangeRequest{ItemID: item.ID, Quantity: 1, Type: "UP", Reason: model.ReasonRestock}, model.ErrInvalidMovementType},
		{"bad reason", dto.StockChangeRequest{ItemID: item.ID, Quantity: 1, Type: model.MovementIn, Reason: "gift"}, model.ErrInvalidReason},
		{"unknown item", dto.StockChangeRequest{ItemID: "missing", Quantity: 1, Type: model.MovementIn, Reason: model.ReasonRestock}, model.ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.services.Stock.AddWithHistory(f.ctx, admin, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Equal(t, int64(0), testutil.Count(t, f.db, &model.StockMovement{}))
}

func TestAddWritesNoHistory(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateItem(t, f.db, "LPG 3 kg", 20000)

	result, err := f.services.Stock.Add(f.ctx, dto.StockChangeRequest{ItemID: item.ID, Quantity: 4, Type: model.MovementIn})
	require.NoError(t, err)
	assert.Nil(t, result.History)
	assert.Equal(t, int64(4), result.NewStock)

	_, err = f.services.Stock.Add(f.ctx, dto.StockChangeRequest{ItemID: item.ID, Quantity: 5, Type: model.MovementOut})
	var stockErr *model.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)

	assert.Equal(t, int64(0), testutil.Count(t, f.db, &model.StockHistory{}))
}

func TestHistoryAndBreakdown(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateItem(t, f.db, "LPG 12 kg", 195000)

	changes := []dto.StockChangeRequest{
		{ItemID: item.ID, Quantity: 10, Type: model.MovementIn, Reason: model.ReasonRestock},
		{ItemID: item.ID, Quantity: 5, Type: model.MovementIn, Reason: model.ReasonRestock},
		{ItemID: item.ID, Quantity: 1, Type: model.MovementOut, Reason: model.ReasonDamaged},
	}
	for _, change := range changes {
		_, err := f.services.Stock.AddWithHistory(f.ctx, admin, change)
		require.NoError(t, err)
	}

	entries, total, err := f.services.Stock.History(f.ctx, item.ID, model.Page{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, entries, 2)

	rows, err := f.services.Stock.Breakdown(f.ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, model.ReasonRestock, rows[0].Reason)
	assert.Equal(t, int64(15), rows[0].TotalQuantity)
	assert.Equal(t, int64(2), rows[0].Count)
	assert.Equal(t, model.ReasonDamaged, rows[1].Reason)
	assert.Equal(t, int64(1), rows[1].TotalQuantity)

	levels, err := f.services.Stock.Levels(f.ctx)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, int64(14), levels[0].Stock)

	_, _, err = f.services.Stock.History(f.ctx, "missing", model.Page{})
	assert.ErrorIs(t, err, model.ErrItemNotFound)
}

func TestMovementsArePaged(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateItem(t, f.db, "LPG 3 kg", 20000)

	for _, qty := range []int64{4, 6} {
		_, err := f.services.Stock.Add(f.ctx, dto.StockChangeRequest{ItemID: item.ID, Quantity: qty, Type: model.MovementIn})
		require.NoError(t, err)
	}
	_, err := f.services.Stock.Add(f.ctx, dto.StockChangeRequest{ItemID: item.ID, Quantity: 3, Type: model.MovementOut})
	require.NoError(t, err)

	movements, total, err := f.services.Stock.Movements(f.ctx, item.ID, model.Page{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, movements, 1)
	assert.Equal(t, int64(7), f.stock(t, item.ID))

	_, _, err = f.services.Stock.Movements(f.ctx, "missing", model.Page{})
	assert.ErrorIs(t, err, model.ErrItemNotFound)
}
