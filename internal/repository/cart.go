package repository

import (
	"context"
	"errors"
	"lpg-marketplace/internal/model"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	FindByUser(ctx context.Context, tx *gorm.DB, userID string) (*model.Cart, error)
	LockByUser(ctx context.Context, tx *gorm.DB, userID string) error
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID string) (*model.Cart, error)
	UpsertItem(ctx context.Context, tx *gorm.DB, cartID, itemID string, qty int64) error
	SetItemQty(ctx context.Context, tx *gorm.DB, cartID, itemID string, qty int64) error
	RemoveItem(ctx context.Context, tx *gorm.DB, cartID, itemID string) error
	Clear(ctx context.Context, tx *gorm.DB, cartID string) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

// FindByUser loads the cart with its lines in insertion order and the items they point at.
func (r *cartRepoImpl) FindByUser(ctx context.Context, tx *gorm.DB, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := conn(r.db, tx).WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Preload("Items.Item").
		Where("user_id = ?", userID).
		First(&cart).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrCartNotFound
		}
		return nil, err
	}

	return &cart, nil
}

// LockByUser takes a row lock on the user's cart so concurrent checkouts of the same cart run
// one after the other. It must be the first read of tx so later reads see the winner's commit.
func (r *cartRepoImpl) LockByUser(ctx context.Context, tx *gorm.DB, userID string) error {
	var locked []model.Cart
	return tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("user_id = ?", userID).
		Find(&locked).Error
}

func (r *cartRepoImpl) GetOrCreate(ctx context.Context, tx *gorm.DB, userID string) (*model.Cart, error) {
	db := conn(r.db, tx).WithContext(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&model.Cart{ID: uuid.NewString(), UserID: userID}).Error
	if err != nil {
		return nil, err
	}

	return r.FindByUser(ctx, tx, userID)
}

// UpsertItem adds qty to the line for itemID, creating the line when the cart has none.
func (r *cartRepoImpl) UpsertItem(ctx context.Context, tx *gorm.DB, cartID, itemID string, qty int64) error {
	line := &model.CartItem{CartID: cartID, ItemID: itemID, Qty: qty}
	return conn(r.db, tx).WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"qty":        gorm.Expr("cart_items.qty + ?", qty),
			"updated_at": time.Now(),
		}),
	}).Create(line).Error
}

func (r *cartRepoImpl) SetItemQty(ctx context.Context, tx *gorm.DB, cartID, itemID string, qty int64) error {
	result := conn(r.db, tx).WithContext(ctx).
		Model(&model.CartItem{}).
		Where("cart_id = ? AND item_id = ?", cartID, itemID).
		Updates(map[string]interface{}{
			"qty":        qty,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

func (r *cartRepoImpl) RemoveItem(ctx context.Context, tx *gorm.DB, cartID, itemID string) error {
	result := conn(r.db, tx).WithContext(ctx).
		Where("cart_id = ? AND item_id = ?", cartID, itemID).
		Delete(&model.CartItem{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

// Clear empties the cart. The cart row itself stays.
func (r *cartRepoImpl) Clear(ctx context.Context, tx *gorm.DB, cartID string) error {
	return conn(r.db, tx).WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}
