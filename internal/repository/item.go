package repository

import (
	"context"
	"errors"
	"lpg-marketplace/internal/model"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemRepository interface {
	Seed(ctx context.Context) error
	Create(ctx context.Context, tx *gorm.DB, item *model.Item) error
	Save(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, tx *gorm.DB, itemID string) (*model.Item, error)
	List(ctx context.Context, activeOnly bool) ([]*model.Item, error)
	LockForUpdate(ctx context.Context, tx *gorm.DB, itemIDs []string) error
}

type itemRepoImpl struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepoImpl{
		db: db,
	}
}

// Seed stores the default cylinder catalog. Existing rows are left untouched.
func (r *itemRepoImpl) Seed(ctx context.Context) error {
	items := []model.Item{
		{ID: "lpg-3kg", Name: "LPG 3 kg", Description: "Subsidised 3 kg cylinder refill", Size: "3kg", Price: decimal.NewFromInt(20000), Status: model.ItemActive},
		{ID: "lpg-5-5kg", Name: "Bright Gas 5.5 kg", Description: "5.5 kg cylinder refill", Size: "5.5kg", Price: decimal.NewFromInt(90000), Status: model.ItemActive},
		{ID: "lpg-12kg", Name: "LPG 12 kg", Description: "12 kg household cylinder refill", Size: "12kg", Price: decimal.NewFromInt(195000), Status: model.ItemActive},
		{ID: "lpg-50kg", Name: "LPG 50 kg", Description: "50 kg commercial cylinder refill", Size: "50kg", Price: decimal.NewFromInt(780000), Status: model.ItemActive},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&items).Error
}

func (r *itemRepoImpl) Create(ctx context.Context, tx *gorm.DB, item *model.Item) error {
	return conn(r.db, tx).WithContext(ctx).Create(item).Error
}

func (r *itemRepoImpl) Save(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, itemID string) (*model.Item, error) {
	var item model.Item
	err := conn(r.db, tx).WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrItemNotFound
		}
		return nil, err
	}

	return &item, nil
}

func (r *itemRepoImpl) List(ctx context.Context, activeOnly bool) ([]*model.Item, error) {
	var items []*model.Item
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("status = ?", model.ItemActive)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

// LockForUpdate takes row locks on the given items in id order so that two settlements
// touching the same items queue instead of folding stale stock. SQLite ignores the clause.
func (r *itemRepoImpl) LockForUpdate(ctx context.Context, tx *gorm.DB, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}

	ids := append([]string(nil), itemIDs...)
	sort.Strings(ids)

	var locked []model.Item
	return tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&locked).Error
}
