package testutil

import (
	"context"
	"fmt"
	"lpg-marketplace/internal/client"
	"lpg-marketplace/internal/model"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, client.Migrate(db))
	return db
}

// CreateItem stores an active item with the given price.
func CreateItem(t *testing.T, db *gorm.DB, name string, price int64) *model.Item {
	t.Helper()

	item := &model.Item{
		ID:     uuid.NewString(),
		Name:   name,
		Size:   "12kg",
		Price:  decimal.NewFromInt(price),
		Status: model.ItemActive,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(item).Error)
	return item
}

// CreatePaymentMethod stores an active payment method.
func CreatePaymentMethod(t *testing.T, db *gorm.DB, name string) *model.PaymentMethod {
	t.Helper()

	method := &model.PaymentMethod{
		ID:     uuid.NewString(),
		Name:   name,
		Type:   "cash",
		Active: true,
	}
	require.NoError(t, db.Create(method).Error)
	return method
}

// Restock writes a raw IN movement.
func Restock(t *testing.T, db *gorm.DB, itemID string, qty int64) {
	t.Helper()

	require.NoError(t, db.Create(&model.StockMovement{
		ID:       uuid.NewString(),
		ItemID:   itemID,
		Quantity: qty,
		Type:     model.MovementIn,
	}).Error)
}

// Count returns the number of rows of the given model.
func Count(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(value).Count(&n).Error)
	return n
}
