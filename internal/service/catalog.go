package service

import (
	"context"
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CatalogService interface {
	ListItems(ctx context.Context, activeOnly bool) ([]*model.Item, error)
	GetItem(ctx context.Context, itemID string) (*model.Item, error)
	CreateItem(ctx context.Context, actor model.Actor, req dto.CreateItemRequest) (*model.Item, error)
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest) (*model.Item, error)
	ListPaymentMethods(ctx context.Context, activeOnly bool) ([]*model.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest) (*model.PaymentMethod, error)
	Seed(ctx context.Context) error
}

type catalogServiceImpl struct {
	db                *gorm.DB
	log               logrus.FieldLogger
	itemRepo          repository.ItemRepository
	paymentMethodRepo repository.PaymentMethodRepository
	ledger            ledger
}

func NewCatalogService(
	db *gorm.DB,
	log logrus.FieldLogger,
	itemRepo repository.ItemRepository,
	paymentMethodRepo repository.PaymentMethodRepository,
	stockRepo repository.StockRepository,
	historyRepo repository.HistoryRepository,
) CatalogService {
	return &catalogServiceImpl{
		db:                db,
		log:               log,
		itemRepo:          itemRepo,
		paymentMethodRepo: paymentMethodRepo,
		ledger:            ledger{stockRepo: stockRepo, historyRepo: historyRepo},
	}
}

func (s *catalogServiceImpl) ListItems(ctx context.Context, activeOnly bool) ([]*model.Item, error) {
	return s.itemRepo.List(ctx, activeOnly)
}

func (s *catalogServiceImpl) GetItem(ctx context.Context, itemID string) (*model.Item, error) {
	return s.itemRepo.FindByID(ctx, nil, itemID)
}

// CreateItem stores a new item. A positive initial stock is booked as an IN movement with an
// "initial" history row in the same transaction.
func (s *catalogServiceImpl) CreateItem(ctx context.Context, actor model.Actor, req dto.CreateItemRequest) (*model.Item, error) {
	if req.Name == "" {
		return nil, model.ErrInvalidItemName
	}
	if err := model.ValidatePrice(req.Price); err != nil {
		return nil, err
	}
	if req.InitialStock < 0 {
		return nil, model.ErrInvalidQuantity
	}

	status := model.ItemStatus(req.Status)
	if status == "" {
		status = model.ItemActive
	}
	if !status.Valid() {
		return nil, model.ErrInvalidItemStatus
	}

	item := &model.Item{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Size:        req.Size,
		Price:       req.Price,
		Image:       req.Image,
		Status:      status,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.itemRepo.Create(ctx, tx, item); err != nil {
			return errors.Wrap(err, "store item")
		}

		if req.InitialStock == 0 {
			return nil
		}

		_, err := s.ledger.write(ctx, tx, ledgerEntry{
			ItemID:        item.ID,
			ItemName:      item.Name,
			Type:          model.MovementIn,
			Quantity:      req.InitialStock,
			Note:          "initial stock",
			Reason:        model.ReasonInitial,
			Actor:         actor,
			ReferenceType: model.ReferenceSystem,
			ReferenceID:   item.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"item_id":       item.ID,
		"initial_stock": req.InitialStock,
	}).Info("item created")

	return item, nil
}

func (s *catalogServiceImpl) UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, nil, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, model.ErrInvalidItemName
		}
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Size != nil {
		item.Size = *req.Size
	}
	if req.Price != nil {
		if err := model.ValidatePrice(*req.Price); err != nil {
			return nil, err
		}
		item.Price = *req.Price
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.Status != nil {
		status := model.ItemStatus(*req.Status)
		if !status.Valid() {
			return nil, model.ErrInvalidItemStatus
		}
		item.Status = status
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, errors.Wrap(err, "update item")
	}

	return item, nil
}

func (s *catalogServiceImpl) ListPaymentMethods(ctx context.Context, activeOnly bool) ([]*model.PaymentMethod, error) {
	return s.paymentMethodRepo.List(ctx, activeOnly)
}

func (s *catalogServiceImpl) CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest) (*model.PaymentMethod, error) {
	if req.Name == "" || req.Type == "" {
		return nil, &model.Error{Kind: model.KindValidation, Message: "name and type are required"}
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	method := &model.PaymentMethod{
		ID:     uuid.NewString(),
		Name:   req.Name,
		Type:   req.Type,
		Active: active,
	}
	if err := s.paymentMethodRepo.Create(ctx, method); err != nil {
		return nil, errors.Wrap(err, "store payment method")
	}

	return method, nil
}

// Seed loads the default cylinder catalog and payment methods. Safe to run repeatedly.
func (s *catalogServiceImpl) Seed(ctx context.Context) error {
	if err := s.itemRepo.Seed(ctx); err != nil {
		return errors.Wrap(err, "seed items")
	}
	if err := s.paymentMethodRepo.Seed(ctx); err != nil {
		return errors.Wrap(err, "seed payment methods")
	}
	return nil
}
