package service

import (
	"context"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/repository"
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultBestSellerLimit = 10

type ReportService interface {
	BestSellers(ctx context.Context, period model.DateRange, limit int) ([]*model.BestSeller, error)
	SalesTrend(ctx context.Context, bucket model.TrendBucket, period model.DateRange) ([]*model.SalesTrendPoint, error)
	RevenueByPaymentMethod(ctx context.Context, period model.DateRange) ([]*model.PaymentMethodRevenue, error)
	Summary(ctx context.Context, period model.DateRange) (*model.ReportSummary, error)
}

type reportServiceImpl struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportServiceImpl{
		reportRepo: reportRepo,
	}
}

func (s *reportServiceImpl) BestSellers(ctx context.Context, period model.DateRange, limit int) ([]*model.BestSeller, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultBestSellerLimit
	}

	rows, err := s.reportRepo.BestSellers(ctx, period, limit)
	if err != nil {
		return nil, errors.Wrap(err, "best sellers")
	}
	return rows, nil
}

// SalesTrend buckets paid transactions by creation date. Buckets are computed here rather than
// in SQL so the same report works on every supported driver.
func (s *reportServiceImpl) SalesTrend(ctx context.Context, bucket model.TrendBucket, period model.DateRange) ([]*model.SalesTrendPoint, error) {
	if bucket == "" {
		bucket = model.BucketDay
	}
	if !bucket.Valid() {
		return nil, model.ErrInvalidBucket
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	transactions, err := s.reportRepo.PaidTransactions(ctx, period)
	if err != nil {
		return nil, errors.Wrap(err, "load paid transactions")
	}

	points := make(map[string]*model.SalesTrendPoint)
	for _, transaction := range transactions {
		key := bucket.Key(transaction.CreatedAt)
		point, ok := points[key]
		if !ok {
			point = &model.SalesTrendPoint{Bucket: key, Revenue: decimal.Zero}
			points[key] = point
		}

		point.Revenue = point.Revenue.Add(transaction.TotalAmount)
		point.Transactions++
		for _, line := range transaction.Items {
			point.Items += line.Qty
		}
	}

	trend := make([]*model.SalesTrendPoint, 0, len(points))
	for _, point := range points {
		trend = append(trend, point)
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Bucket < trend[j].Bucket
	})

	return trend, nil
}

func (s *reportServiceImpl) RevenueByPaymentMethod(ctx context.Context, period model.DateRange) ([]*model.PaymentMethodRevenue, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.reportRepo.RevenueByPaymentMethod(ctx, period)
	if err != nil {
		return nil, errors.Wrap(err, "revenue by payment method")
	}
	return rows, nil
}

// Summary runs the dashboard reports concurrently with the default day bucket.
func (s *reportServiceImpl) Summary(ctx context.Context, period model.DateRange) (*model.ReportSummary, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	var (
		bestSellers []*model.BestSeller
		trend       []*model.SalesTrendPoint
		byMethod    []*model.PaymentMethodRevenue
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bestSellers, err = s.BestSellers(gctx, period, defaultBestSellerLimit)
		return err
	})
	g.Go(func() error {
		var err error
		trend, err = s.SalesTrend(gctx, model.BucketDay, period)
		return err
	})
	g.Go(func() error {
		var err error
		byMethod, err = s.RevenueByPaymentMethod(gctx, period)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &model.ReportSummary{
		BestSellers:     make([]model.BestSeller, 0, len(bestSellers)),
		SalesTrend:      make([]model.SalesTrendPoint, 0, len(trend)),
		RevenueByMethod: make([]model.PaymentMethodRevenue, 0, len(byMethod)),
	}
	for _, row := range bestSellers {
		summary.BestSellers = append(summary.BestSellers, *row)
	}
	for _, point := range trend {
		summary.SalesTrend = append(summary.SalesTrend, *point)
	}
	for _, row := range byMethod {
		summary.RevenueByMethod = append(summary.RevenueByMethod, *row)
	}

	return summary, nil
}
