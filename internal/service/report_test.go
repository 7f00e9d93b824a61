package service

import (
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/testutil"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportsCountPaidTransactionsOnly(t *testing.T) {
	f := newFixture(t)
	small := testutil.CreateItem(t, f.db, "LPG 3 kg", 20000)
	big := testutil.CreateItem(t, f.db, "LPG 12 kg", 195000)
	testutil.Restock(t, f.db, small.ID, 100)
	testutil.Restock(t, f.db, big.ID, 100)

	first := f.sell(t, buyer, small, 5)
	second := f.sell(t, buyer, big, 2)
	f.sell(t, buyer, big, 50) // never paid

	_, err := f.services.Payment.BulkPay(f.ctx, admin, dto.BulkPayRequest{
		UserID:          buyer.ID,
		TransactionIDs:  []string{first.ID, second.ID},
		PaymentMethodID: f.method.ID,
	})
	require.NoError(t, err)

	sellers, err := f.services.Report.BestSellers(f.ctx, model.DateRange{}, 0)
	require.NoError(t, err)
	require.Len(t, sellers, 2)
	assert.Equal(t, small.ID, sellers[0].ItemID)
	assert.Equal(t, int64(5), sellers[0].Quantity)
	assert.True(t, decimal.NewFromInt(100000).Equal(sellers[0].Revenue))
	assert.Equal(t, big.ID, sellers[1].ItemID)
	assert.Equal(t, int64(2), sellers[1].Quantity)

	trend, err := f.services.Report.SalesTrend(f.ctx, model.BucketMonth, model.DateRange{})
	require.NoError(t, err)
	require.Len(t, trend, 1)
	assert.Equal(t, model.BucketMonth.Key(first.CreatedAt), trend[0].Bucket)
	assert.Equal(t, int64(2), trend[0].Transactions)
	assert.Equal(t, int64(7), trend[0].Items)
	assert.True(t, decimal.NewFromInt(5*20000+2*195000).Equal(trend[0].Revenue))

	byMethod, err := f.services.Report.RevenueByPaymentMethod(f.ctx, model.DateRange{})
	require.NoError(t, err)
	require.Len(t, byMethod, 1)
	assert.Equal(t, f.method.ID, byMethod[0].PaymentMethodID)
	assert.Equal(t, "Cash", byMethod[0].Name)
	assert.Equal(t, int64(2), byMethod[0].Transactions)

	summary, err := f.services.Report.Summary(f.ctx, model.DateRange{})
	require.NoError(t, err)
	assert.Len(t, summary.BestSellers, 2)
	assert.Len(t, summary.SalesTrend, 1)
	assert.Len(t, summary.RevenueByMethod, 1)
}

func TestReportValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.services.Report.SalesTrend(f.ctx, "year", model.DateRange{})
	assert.ErrorIs(t, err, model.ErrInvalidBucket)

	from := time.Now()
	to := from.Add(-time.Hour)
	_, err = f.services.Report.BestSellers(f.ctx, model.DateRange{From: &from, To: &to}, 5)
	assert.ErrorIs(t, err, model.ErrInvalidDateRange)

	trend, err := f.services.Report.SalesTrend(f.ctx, model.BucketDay, model.DateRange{})
	require.NoError(t, err)
	assert.Empty(t, trend)
}
