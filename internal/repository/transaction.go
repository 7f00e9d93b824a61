package repository

import (
	"context"
	"errors"
	"lpg-marketplace/internal/model"
	"time"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, transaction *model.Transaction) error
	FindByID(ctx context.Context, tx *gorm.DB, transactionID string) (*model.Transaction, error)
	FindMany(ctx context.Context, tx *gorm.DB, transactionIDs []string) ([]*model.Transaction, error)
	List(ctx context.Context, filter model.TransactionFilter) ([]*model.Transaction, int64, error)
	MarkCancelled(ctx context.Context, tx *gorm.DB, transactionID string) error
	MarkPaid(ctx context.Context, tx *gorm.DB, transactionIDs []string, paymentID, paymentMethodID string, paidAt time.Time) (int64, error)
}

type transactionRepoImpl struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepoImpl{
		db: db,
	}
}

// Create inserts the transaction together with its line snapshot.
func (r *transactionRepoImpl) Create(ctx context.Context, tx *gorm.DB, transaction *model.Transaction) error {
	return conn(r.db, tx).WithContext(ctx).Create(transaction).Error
}

func (r *transactionRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, transactionID string) (*model.Transaction, error) {
	var transaction model.Transaction
	err := conn(r.db, tx).WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("transaction_items.id ASC")
		}).
		Where("id = ?", transactionID).
		First(&transaction).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrTransactionNotFound
		}
		return nil, err
	}

	return &transaction, nil
}

func (r *transactionRepoImpl) FindMany(ctx context.Context, tx *gorm.DB, transactionIDs []string) ([]*model.Transaction, error) {
	var transactions []*model.Transaction
	err := conn(r.db, tx).WithContext(ctx).
		Where("id IN ?", transactionIDs).
		Order("created_at ASC").
		Find(&transactions).Error

	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *transactionRepoImpl) List(ctx context.Context, filter model.TransactionFilter) ([]*model.Transaction, int64, error) {
	page := filter.Page.Normalize()
	query := r.db.WithContext(ctx).Model(&model.Transaction{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []*model.Transaction
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("transaction_items.id ASC")
		}).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// MarkCancelled only moves a PENDING transaction.
func (r *transactionRepoImpl) MarkCancelled(ctx context.Context, tx *gorm.DB, transactionID string) error {
	now := time.Now()
	result := conn(r.db, tx).WithContext(ctx).Model(&model.Transaction{}).
		Where(`
			id = ?
			AND status = ?
		`,
			transactionID,
			model.TransactionPending,
		).
		Updates(map[string]interface{}{
			"status":       model.TransactionCancelled,
			"cancelled_at": now,
			"updated_at":   now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrTransactionNotPending
	}

	return nil
}

// MarkPaid flips every still-payable transaction in the batch and reports how many moved.
func (r *transactionRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, transactionIDs []string, paymentID, paymentMethodID string, paidAt time.Time) (int64, error) {
	result := conn(r.db, tx).WithContext(ctx).Model(&model.Transaction{}).
		Where(`
			id IN ?
			AND status IN ?
		`,
			transactionIDs,
			[]model.TransactionStatus{model.TransactionPending, model.TransactionUnpaid},
		).
		Updates(map[string]interface{}{
			"status":            model.TransactionPaid,
			"payment_id":        paymentID,
			"payment_method_id": paymentMethodID,
			"paid_at":           paidAt,
			"updated_at":        paidAt,
		})

	return result.RowsAffected, result.Error
}
