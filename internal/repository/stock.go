package repository

import (
	"context"
	"lpg-marketplace/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockRepository interface {
	RecordMovement(ctx context.Context, tx *gorm.DB, movement *model.StockMovement) error
	CurrentStock(ctx context.Context, tx *gorm.DB, itemID string) (int64, error)
	Levels(ctx context.Context) ([]*model.StockLevel, error)
	ListMovements(ctx context.Context, itemID string, page model.Page) ([]*model.StockMovement, int64, error)
}

type stockRepoImpl struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepoImpl{
		db: db,
	}
}

// RecordMovement appends one ledger entry. It does not look at the current stock.
func (r *stockRepoImpl) RecordMovement(ctx context.Context, tx *gorm.DB, movement *model.StockMovement) error {
	if err := movement.Validate(); err != nil {
		return err
	}
	if movement.ID == "" {
		movement.ID = uuid.NewString()
	}

	return conn(r.db, tx).WithContext(ctx).Create(movement).Error
}

func (r *stockRepoImpl) CurrentStock(ctx context.Context, tx *gorm.DB, itemID string) (int64, error) {
	var stock int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&model.StockMovement{}).
		Where("item_id = ?", itemID).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN quantity ELSE -quantity END), 0)", model.MovementIn).
		Scan(&stock).Error

	if err != nil {
		return 0, err
	}

	return stock, nil
}

func (r *stockRepoImpl) Levels(ctx context.Context) ([]*model.StockLevel, error) {
	var levels []*model.StockLevel
	err := r.db.WithContext(ctx).
		Table("items").
		Select(`
			items.id AS item_id,
			items.name AS name,
			items.size AS size,
			COALESCE(SUM(CASE WHEN stock_movements.type = ? THEN stock_movements.quantity
				WHEN stock_movements.type = ? THEN -stock_movements.quantity
				ELSE 0 END), 0) AS stock
		`, model.MovementIn, model.MovementOut).
		Joins("LEFT JOIN stock_movements ON stock_movements.item_id = items.id").
		Group("items.id, items.name, items.size").
		Order("items.name ASC").
		Scan(&levels).Error

	if err != nil {
		return nil, err
	}

	return levels, nil
}

func (r *stockRepoImpl) ListMovements(ctx context.Context, itemID string, page model.Page) ([]*model.StockMovement, int64, error) {
	page = page.Normalize()
	query := r.db.WithContext(ctx).Model(&model.StockMovement{}).Where("item_id = ?", itemID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movements []*model.StockMovement
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&movements).Error
	if err != nil {
		return nil, 0, err
	}

	return movements, total, nil
}
