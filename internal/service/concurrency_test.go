package service

import (
	"context"
	"fmt"
	"lpg-marketplace/internal/client"
	"lpg-marketplace/internal/config"
	"lpg-marketplace/internal/logger"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/testutil"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFileFixture runs the services on a pooled, file-backed SQLite database opened the way
// the server opens it, so requests really do run side by side.
func newFileFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := client.InitDBClient(config.Database{
		Driver:          "sqlite",
		URL:             filepath.Join(t.TempDir(), "lpg.db"),
		MaxIdleConns:    10,
		MaxOpenConns:    10,
		ConnMaxLifetime: time.Hour,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, client.Migrate(db))

	return &fixture{
		ctx:      context.Background(),
		db:       db,
		services: NewServices(db, config.Settlement{LockItems: true}, logger.Discard()),
		method:   testutil.CreatePaymentMethod(t, db, "Cash"),
	}
}

func TestConcurrentCheckoutsAllSettle(t *testing.T) {
	f := newFileFixture(t)
	item := testutil.CreateItem(t, f.db, "LPG 3 kg", 20000)
	testutil.Restock(t, f.db, item.ID, 100)

	const buyers = 10
	users := make([]model.Actor, buyers)
	for i := range users {
		users[i] = model.UserActor(fmt.Sprintf("user-%d", i), "Buyer")
		f.addToCart(t, users[i], item.ID, 1)
	}

	var wg sync.WaitGroup
	errs := make([]error, buyers)
	invoices := make([]string, buyers)
	for i, user := range users {
		wg.Add(1)
		go func(i int, user model.Actor) {
			defer wg.Done()
			transaction, err := f.checkout(user)
			errs[i] = err
			if err == nil {
				invoices[i] = transaction.InvoiceNumber
			}
		}(i, user)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "checkout for %s", users[i].ID)
	}
	assert.Equal(t, int64(100-buyers), f.stock(t, item.ID))

	seen := make(map[string]bool, buyers)
	for _, invoice := range invoices {
		assert.False(t, seen[invoice], "invoice %s issued twice", invoice)
		seen[invoice] = true
	}
	assert.Equal(t, int64(buyers), testutil.Count(t, f.db, &model.Transaction{}))
}

func TestConcurrentCheckoutsCannotOversell(t *testing.T) {
	f := newFileFixture(t)
	item := testutil.CreateItem(t, f.db, "LPG 50 kg", 780000)
	testutil.Restock(t, f.db, item.ID, 3)

	const buyers = 6
	users := make([]model.Actor, buyers)
	for i := range users {
		users[i] = model.UserActor(fmt.Sprintf("user-%d", i), "Buyer")
		f.addToCart(t, users[i], item.ID, 1)
	}

	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i, user := range users {
		wg.Add(1)
		go func(i int, user model.Actor) {
			defer wg.Done()
			_, errs[i] = f.checkout(user)
		}(i, user)
	}
	wg.Wait()

	settled := 0
	for _, err := range errs {
		if err == nil {
			settled++
			continue
		}
		var stockErr *model.InsufficientStockError
		assert.ErrorAs(t, err, &stockErr)
	}
	assert.Equal(t, 3, settled)
	assert.Equal(t, int64(0), f.stock(t, item.ID))
}

func TestDoubleSubmittedCartSettlesOnce(t *testing.T) {
	f := newFileFixture(t)
	item := testutil.CreateItem(t, f.db, "LPG 12 kg", 195000)
	testutil.Restock(t, f.db, item.ID, 10)
	f.addToCart(t, buyer, item.ID, 2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.checkout(buyer)
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			assert.ErrorIs(t, err, model.ErrCartEmpty)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, int64(1), testutil.Count(t, f.db, &model.Transaction{}))
	assert.Equal(t, int64(8), f.stock(t, item.ID))
}
