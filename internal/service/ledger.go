package service

import (
	"context"
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/repository"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"
)

// ledgerEntry describes one stock change and, when Reason is set, its audit row.
type ledgerEntry struct {
	ItemID        string
	ItemName      string
	Type          model.MovementType
	Quantity      int64
	Note          string
	Reason        model.StockReason
	Actor         model.Actor
	ReferenceType model.ReferenceType
	ReferenceID   string
}

// ledger writes movements and their history next to each other. Every call must run inside
// the caller's database transaction.
type ledger struct {
	stockRepo   repository.StockRepository
	historyRepo repository.HistoryRepository
}

func (l ledger) write(ctx context.Context, tx *gorm.DB, entry ledgerEntry) (*dto.StockChangeResult, error) {
	previous, err := l.stockRepo.CurrentStock(ctx, tx, entry.ItemID)
	if err != nil {
		return nil, errors.Wrap(err, "fold stock")
	}

	if entry.Type == model.MovementOut && previous < entry.Quantity {
		return nil, &model.InsufficientStockError{
			ItemID:    entry.ItemID,
			ItemName:  entry.ItemName,
			Available: previous,
			Requested: entry.Quantity,
		}
	}

	movement := &model.StockMovement{
		ItemID:   entry.ItemID,
		Quantity: entry.Quantity,
		Type:     entry.Type,
		Note:     entry.Note,
	}
	if err := l.stockRepo.RecordMovement(ctx, tx, movement); err != nil {
		return nil, errors.Wrap(err, "record stock movement")
	}
	movementCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("type", string(entry.Type))))

	result := &dto.StockChangeResult{
		Stock:         movement,
		PreviousStock: previous,
		NewStock:      model.Apply(previous, entry.Type, entry.Quantity),
	}

	if entry.Reason == "" {
		return result, nil
	}

	history := &model.StockHistory{
		ItemID:        entry.ItemID,
		MovementID:    movement.ID,
		Type:          entry.Type,
		Quantity:      entry.Quantity,
		Reason:        entry.Reason,
		Note:          entry.Note,
		PreviousStock: result.PreviousStock,
		NewStock:      result.NewStock,
		PerformedBy:   entry.Actor,
		ReferenceType: entry.ReferenceType,
		ReferenceID:   entry.ReferenceID,
	}
	if err := l.historyRepo.Create(ctx, tx, history); err != nil {
		return nil, errors.Wrap(err, "record stock history")
	}
	result.History = history

	return result, nil
}
