package service

import (
	"context"
	"lpg-marketplace/internal/config"
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/logger"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/testutil"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	buyer = model.UserActor("user-1", "Budi")
	other = model.UserActor("user-2", "Sari")
	admin = model.AdminActor("admin-1", "Back Office")
)

type fixture struct {
	ctx      context.Context
	db       *gorm.DB
	services *Services
	method   *model.PaymentMethod
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	return &fixture{
		ctx:      context.Background(),
		db:       db,
		services: NewServices(db, config.Settlement{LockItems: true}, logger.Discard()),
		method:   testutil.CreatePaymentMethod(t, db, "Cash"),
	}
}

func (f *fixture) stock(t *testing.T, itemID string) int64 {
	t.Helper()

	var movements []model.StockMovement
	require.NoError(t, f.db.Where("item_id = ?", itemID).Find(&movements).Error)
	return model.Fold(movements)
}

func (f *fixture) addToCart(t *testing.T, user model.Actor, itemID string, qty int64) {
	t.Helper()

	_, err := f.services.Cart.AddItem(f.ctx, user.ID, dto.AddCartItemRequest{ItemID: itemID, Qty: qty})
	require.NoError(t, err)
}

func (f *fixture) checkout(user model.Actor) (*model.Transaction, error) {
	return f.services.Settlement.Checkout(f.ctx, user, dto.CheckoutRequest{
		PaymentMethodID: f.method.ID,
		ShippingAddress: "Jl. Merdeka 1",
	})
}
