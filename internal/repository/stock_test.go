package repository

import (
	"context"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentStockIsFoldOfMovements(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()
	item := testutil.CreateItem(t, db, "LPG 12 kg", 195000)

	stock, err := repo.CurrentStock(ctx, nil, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stock)

	movements := []model.StockMovement{
		{ItemID: item.ID, Quantity: 10, Type: model.MovementIn},
		{ItemID: item.ID, Quantity: 4, Type: model.MovementOut},
		{ItemID: item.ID, Quantity: 2, Type: model.MovementIn},
		{ItemID: item.ID, Quantity: 9, Type: model.MovementOut},
	}
	for i := range movements {
		require.NoError(t, repo.RecordMovement(ctx, nil, &movements[i]))
		assert.NotEmpty(t, movements[i].ID)
	}

	stock, err = repo.CurrentStock(ctx, nil, item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Fold(movements), stock)
	assert.Equal(t, int64(-1), stock)
}

func TestRecordMovementRejectsInvalidEntries(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()
	item := testutil.CreateItem(t, db, "LPG 3 kg", 20000)

	err := repo.RecordMovement(ctx, nil, &model.StockMovement{ItemID: item.ID, Quantity: 0, Type: model.MovementIn})
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)

	err = repo.RecordMovement(ctx, nil, &model.StockMovement{ItemID: item.ID, Quantity: 1, Type: "ADJ"})
	assert.ErrorIs(t, err, model.ErrInvalidMovementType)

	err = repo.RecordMovement(ctx, nil, &model.StockMovement{Quantity: 1, Type: model.MovementIn})
	assert.ErrorIs(t, err, model.ErrInvalidItem)

	assert.Equal(t, int64(0), testutil.Count(t, db, &model.StockMovement{}))
}

func TestStockLevels(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()

	small := testutil.CreateItem(t, db, "A small", 20000)
	big := testutil.CreateItem(t, db, "B big", 780000)
	testutil.Restock(t, db, small.ID, 7)
	require.NoError(t, repo.RecordMovement(ctx, nil, &model.StockMovement{ItemID: small.ID, Quantity: 2, Type: model.MovementOut}))

	levels, err := repo.Levels(ctx)
	require.NoError(t, err)
	require.Len(t, levels, 2)

	assert.Equal(t, small.ID, levels[0].ItemID)
	assert.Equal(t, int64(5), levels[0].Stock)
	assert.Equal(t, big.ID, levels[1].ItemID)
	assert.Equal(t, int64(0), levels[1].Stock)
}
