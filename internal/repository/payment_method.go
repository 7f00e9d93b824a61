package repository

import (
	"context"
	"errors"
	"lpg-marketplace/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentMethodRepository interface {
	Seed(ctx context.Context) error
	Create(ctx context.Context, method *model.PaymentMethod) error
	FindByID(ctx context.Context, tx *gorm.DB, methodID string) (*model.PaymentMethod, error)
	List(ctx context.Context, activeOnly bool) ([]*model.PaymentMethod, error)
}

type paymentMethodRepoImpl struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepoImpl{
		db: db,
	}
}

func (r *paymentMethodRepoImpl) Seed(ctx context.Context) error {
	methods := []model.PaymentMethod{
		{ID: "cash", Name: "Cash on delivery", Type: "cash", Active: true},
		{ID: "bank-transfer", Name: "Bank transfer", Type: "bank_transfer", Active: true},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&methods).Error
}

func (r *paymentMethodRepoImpl) Create(ctx context.Context, method *model.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

func (r *paymentMethodRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, methodID string) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	err := conn(r.db, tx).WithContext(ctx).
		Where("id = ?", methodID).
		First(&method).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPaymentMethodNotFound
		}
		return nil, err
	}

	return &method, nil
}

func (r *paymentMethodRepoImpl) List(ctx context.Context, activeOnly bool) ([]*model.PaymentMethod, error) {
	var methods []*model.PaymentMethod
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Find(&methods).Error; err != nil {
		return nil, err
	}

	return methods, nil
}
