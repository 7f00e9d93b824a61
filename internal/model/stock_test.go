package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name      string
		movements []StockMovement
		want      int64
	}{
		{name: "empty ledger", want: 0},
		{
			name: "ins and outs",
			movements: []StockMovement{
				{Quantity: 10, Type: MovementIn},
				{Quantity: 4, Type: MovementOut},
				{Quantity: 3, Type: MovementIn},
			},
			want: 9,
		},
		{
			name: "not clamped at zero",
			movements: []StockMovement{
				{Quantity: 2, Type: MovementIn},
				{Quantity: 5, Type: MovementOut},
			},
			want: -3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.movements))
		})
	}
}

func TestApply(t *testing.T) {
	assert.Equal(t, int64(13), Apply(10, MovementIn, 3))
	assert.Equal(t, int64(7), Apply(10, MovementOut, 3))
}

func TestStockMovementValidate(t *testing.T) {
	valid := StockMovement{ItemID: "lpg-3kg", Quantity: 1, Type: MovementIn}
	assert.NoError(t, valid.Validate())

	noItem := valid
	noItem.ItemID = ""
	assert.ErrorIs(t, noItem.Validate(), ErrInvalidItem)

	zero := valid
	zero.Quantity = 0
	assert.ErrorIs(t, zero.Validate(), ErrInvalidQuantity)

	negative := valid
	negative.Quantity = -4
	assert.ErrorIs(t, negative.Validate(), ErrInvalidQuantity)

	badType := valid
	badType.Type = "SIDEWAYS"
	assert.ErrorIs(t, badType.Validate(), ErrInvalidMovementType)
}
