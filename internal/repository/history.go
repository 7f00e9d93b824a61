package repository

import (
	"context"
	"lpg-marketplace/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HistoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *model.StockHistory) error
	ListByItem(ctx context.Context, itemID string, page model.Page) ([]*model.StockHistory, int64, error)
	Breakdown(ctx context.Context, itemID string) ([]*model.ReasonBreakdown, error)
}

type historyRepoImpl struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepoImpl{
		db: db,
	}
}

func (r *historyRepoImpl) Create(ctx context.Context, tx *gorm.DB, entry *model.StockHistory) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return conn(r.db, tx).WithContext(ctx).Create(entry).Error
}

// ListByItem pages through an item's history, newest first.
func (r *historyRepoImpl) ListByItem(ctx context.Context, itemID string, page model.Page) ([]*model.StockHistory, int64, error) {
	page = page.Normalize()
	query := r.db.WithContext(ctx).Model(&model.StockHistory{}).Where("item_id = ?", itemID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*model.StockHistory
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *historyRepoImpl) Breakdown(ctx context.Context, itemID string) ([]*model.ReasonBreakdown, error) {
	var rows []*model.ReasonBreakdown
	err := r.db.WithContext(ctx).
		Model(&model.StockHistory{}).
		Select("reason, COALESCE(SUM(quantity), 0) AS total_quantity, COUNT(*) AS count").
		Where("item_id = ?", itemID).
		Group("reason").
		Order("total_quantity DESC").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}
