package repository

import (
	"context"
	"lpg-marketplace/internal/model"

	"gorm.io/gorm"
)

type ReportRepository interface {
	BestSellers(ctx context.Context, period model.DateRange, limit int) ([]*model.BestSeller, error)
	PaidTransactions(ctx context.Context, period model.DateRange) ([]*model.Transaction, error)
	RevenueByPaymentMethod(ctx context.Context, period model.DateRange) ([]*model.PaymentMethodRevenue, error)
}

type reportRepoImpl struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepoImpl{
		db: db,
	}
}

// paidWithin restricts a query to PAID transactions created inside the period.
func paidWithin(period model.DateRange) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("transactions.status = ?", model.TransactionPaid)
		if period.From != nil {
			db = db.Where("transactions.created_at >= ?", *period.From)
		}
		if period.To != nil {
			db = db.Where("transactions.created_at <= ?", *period.To)
		}
		return db
	}
}

func (r *reportRepoImpl) BestSellers(ctx context.Context, period model.DateRange, limit int) ([]*model.BestSeller, error) {
	var rows []*model.BestSeller
	err := r.db.WithContext(ctx).
		Table("transaction_items").
		Select(`
			transaction_items.item_id AS item_id,
			MAX(transaction_items.item_name) AS item_name,
			SUM(transaction_items.qty) AS quantity,
			SUM(transaction_items.subtotal) AS revenue
		`).
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Scopes(paidWithin(period)).
		Group("transaction_items.item_id").
		Order("quantity DESC").
		Order("transaction_items.item_id ASC").
		Limit(limit).
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *reportRepoImpl) PaidTransactions(ctx context.Context, period model.DateRange) ([]*model.Transaction, error) {
	var transactions []*model.Transaction
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Scopes(paidWithin(period)).
		Preload("Items").
		Order("transactions.created_at ASC").
		Find(&transactions).Error

	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *reportRepoImpl) RevenueByPaymentMethod(ctx context.Context, period model.DateRange) ([]*model.PaymentMethodRevenue, error) {
	var rows []*model.PaymentMethodRevenue
	err := r.db.WithContext(ctx).
		Table("transactions").
		Select(`
			COALESCE(transactions.payment_method_id, '') AS payment_method_id,
			COALESCE(MAX(payment_methods.name), 'Unknown') AS name,
			SUM(transactions.total_amount) AS revenue,
			COUNT(*) AS transactions
		`).
		Joins("LEFT JOIN payment_methods ON payment_methods.id = transactions.payment_method_id").
		Scopes(paidWithin(period)).
		Group("COALESCE(transactions.payment_method_id, '')").
		Order("revenue DESC").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}
