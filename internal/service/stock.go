package service

import (
	"context"
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/repository"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type StockService interface {
	Add(ctx context.Context, req dto.StockChangeRequest) (*dto.StockChangeResult, error)
	AddWithHistory(ctx context.Context, actor model.Actor, req dto.StockChangeRequest) (*dto.StockChangeResult, error)
	Levels(ctx context.Context) ([]*model.StockLevel, error)
	Movements(ctx context.Context, itemID string, page model.Page) ([]*model.StockMovement, int64, error)
	History(ctx context.Context, itemID string, page model.Page) ([]*model.StockHistory, int64, error)
	Breakdown(ctx context.Context, itemID string) ([]*model.ReasonBreakdown, error)
}

type stockServiceImpl struct {
	db          *gorm.DB
	log         logrus.FieldLogger
	itemRepo    repository.ItemRepository
	stockRepo   repository.StockRepository
	historyRepo repository.HistoryRepository
	ledger      ledger
}

func NewStockService(
	db *gorm.DB,
	log logrus.FieldLogger,
	itemRepo repository.ItemRepository,
	stockRepo repository.StockRepository,
	historyRepo repository.HistoryRepository,
) StockService {
	return &stockServiceImpl{
		db:          db,
		log:         log,
		itemRepo:    itemRepo,
		stockRepo:   stockRepo,
		historyRepo: historyRepo,
		ledger:      ledger{stockRepo: stockRepo, historyRepo: historyRepo},
	}
}

func validateStockChange(req dto.StockChangeRequest, withReason bool) error {
	if req.ItemID == "" {
		return model.ErrInvalidItem
	}
	if req.Quantity <= 0 {
		return model.ErrInvalidQuantity
	}
	if !req.Type.Valid() {
		return model.ErrInvalidMovementType
	}
	if withReason && !req.Reason.Valid() {
		return model.ErrInvalidReason
	}
	return nil
}

// Add appends a bare ledger movement. OUT is still checked against the fold.
func (s *stockServiceImpl) Add(ctx context.Context, req dto.StockChangeRequest) (result *dto.StockChangeResult, err error) {
	ctx, span := startSpan(ctx, "StockService.Add",
		attribute.String("item.id", req.ItemID),
		attribute.String("movement.type", string(req.Type)),
		attribute.Int64("movement.quantity", req.Quantity),
	)
	defer func() { endSpan(span, err) }()

	if err := validateStockChange(req, false); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.itemRepo.FindByID(ctx, tx, req.ItemID)
		if err != nil {
			return err
		}

		result, err = s.ledger.write(ctx, tx, ledgerEntry{
			ItemID:   item.ID,
			ItemName: item.Name,
			Type:     req.Type,
			Quantity: req.Quantity,
			Note:     req.Note,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AddWithHistory appends a movement and its audit row in one transaction. Nothing is written
// when an OUT exceeds the current stock.
func (s *stockServiceImpl) AddWithHistory(ctx context.Context, actor model.Actor, req dto.StockChangeRequest) (result *dto.StockChangeResult, err error) {
	ctx, span := startSpan(ctx, "StockService.AddWithHistory",
		attribute.String("item.id", req.ItemID),
		attribute.String("movement.type", string(req.Type)),
		attribute.String("movement.reason", string(req.Reason)),
		attribute.Int64("movement.quantity", req.Quantity),
	)
	defer func() { endSpan(span, err) }()

	if err := validateStockChange(req, true); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.itemRepo.FindByID(ctx, tx, req.ItemID)
		if err != nil {
			return err
		}

		result, err = s.ledger.write(ctx, tx, ledgerEntry{
			ItemID:        item.ID,
			ItemName:      item.Name,
			Type:          req.Type,
			Quantity:      req.Quantity,
			Note:          req.Note,
			Reason:        req.Reason,
			Actor:         actor,
			ReferenceType: model.ReferenceManual,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"item_id":        req.ItemID,
		"type":           req.Type,
		"reason":         req.Reason,
		"quantity":       req.Quantity,
		"previous_stock": result.PreviousStock,
		"new_stock":      result.NewStock,
		"actor_id":       actor.ID,
	}).Info("stock changed")

	return result, nil
}

func (s *stockServiceImpl) Levels(ctx context.Context) ([]*model.StockLevel, error) {
	levels, err := s.stockRepo.Levels(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list stock levels")
	}
	return levels, nil
}

func (s *stockServiceImpl) Movements(ctx context.Context, itemID string, page model.Page) ([]*model.StockMovement, int64, error) {
	if _, err := s.itemRepo.FindByID(ctx, nil, itemID); err != nil {
		return nil, 0, err
	}
	return s.stockRepo.ListMovements(ctx, itemID, page)
}

func (s *stockServiceImpl) History(ctx context.Context, itemID string, page model.Page) ([]*model.StockHistory, int64, error) {
	if _, err := s.itemRepo.FindByID(ctx, nil, itemID); err != nil {
		return nil, 0, err
	}
	return s.historyRepo.ListByItem(ctx, itemID, page)
}

func (s *stockServiceImpl) Breakdown(ctx context.Context, itemID string) ([]*model.ReasonBreakdown, error) {
	if _, err := s.itemRepo.FindByID(ctx, nil, itemID); err != nil {
		return nil, err
	}
	return s.historyRepo.Breakdown(ctx, itemID)
}
