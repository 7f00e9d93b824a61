package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TrendBucket string

const (
	BucketDay   TrendBucket = "day"
	BucketWeek  TrendBucket = "week"
	BucketMonth TrendBucket = "month"
)

func (b TrendBucket) Valid() bool {
	return b == BucketDay || b == BucketWeek || b == BucketMonth
}

// Key formats t into its bucket label. Labels sort in chronological order.
func (b TrendBucket) Key(t time.Time) string {
	switch b {
	case BucketWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case BucketMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) Validate() error {
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return ErrInvalidDateRange
	}
	return nil
}

type BestSeller struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type SalesTrendPoint struct {
	Bucket       string          `json:"bucket"`
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int64           `json:"transactions"`
	Items        int64           `json:"items"`
}

type PaymentMethodRevenue struct {
	PaymentMethodID string          `json:"payment_method_id"`
	Name            string          `json:"name"`
	Revenue         decimal.Decimal `json:"revenue"`
	Transactions    int64           `json:"transactions"`
}

type ReportSummary struct {
	BestSellers     []BestSeller           `json:"best_sellers"`
	SalesTrend      []SalesTrendPoint      `json:"sales_trend"`
	RevenueByMethod []PaymentMethodRevenue `json:"revenue_by_payment_method"`
}
