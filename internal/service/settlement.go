package service

import (
	"context"
	"fmt"
	"lpg-marketplace/internal/config"
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/repository"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"
)

type SettlementService interface {
	Checkout(ctx context.Context, actor model.Actor, req dto.CheckoutRequest) (*model.Transaction, error)
	Cancel(ctx context.Context, actor model.Actor, transactionID string) (*model.Transaction, error)
	CreateForUser(ctx context.Context, admin model.Actor, req dto.AdminTransactionRequest) (*model.Transaction, error)
	Get(ctx context.Context, actor model.Actor, transactionID string) (*model.Transaction, error)
	List(ctx context.Context, filter model.TransactionFilter) ([]*model.Transaction, int64, error)
}

type settlementServiceImpl struct {
	db                *gorm.DB
	log               logrus.FieldLogger
	lockItems         bool
	itemRepo          repository.ItemRepository
	paymentMethodRepo repository.PaymentMethodRepository
	cartRepo          repository.CartRepository
	transactionRepo   repository.TransactionRepository
	sequenceRepo      repository.SequenceRepository
	ledger            ledger
}

func NewSettlementService(
	db *gorm.DB,
	log logrus.FieldLogger,
	cfg config.Settlement,
	itemRepo repository.ItemRepository,
	paymentMethodRepo repository.PaymentMethodRepository,
	cartRepo repository.CartRepository,
	transactionRepo repository.TransactionRepository,
	sequenceRepo repository.SequenceRepository,
	stockRepo repository.StockRepository,
	historyRepo repository.HistoryRepository,
) SettlementService {
	return &settlementServiceImpl{
		db:                db,
		log:               log,
		lockItems:         cfg.LockItems,
		itemRepo:          itemRepo,
		paymentMethodRepo: paymentMethodRepo,
		cartRepo:          cartRepo,
		transactionRepo:   transactionRepo,
		sequenceRepo:      sequenceRepo,
		ledger:            ledger{stockRepo: stockRepo, historyRepo: historyRepo},
	}
}

// settlement is one request to turn lines into an immutable transaction.
type settlement struct {
	UserID          string
	Actor           model.Actor
	Lines           []dto.Line
	Status          model.TransactionStatus
	Reason          model.StockReason
	ReferenceType   model.ReferenceType
	PaymentMethodID *string
	ShippingAddress string
	Notes           string
}

// settle validates every line against the folded stock before writing anything, then books one
// OUT movement per line and stores the transaction. It must run inside tx.
func (s *settlementServiceImpl) settle(ctx context.Context, tx *gorm.DB, in settlement) (*model.Transaction, error) {
	if s.lockItems {
		itemIDs := make([]string, len(in.Lines))
		for i, line := range in.Lines {
			itemIDs[i] = line.ItemID
		}
		if err := s.itemRepo.LockForUpdate(ctx, tx, itemIDs); err != nil {
			return nil, errors.Wrap(err, "lock items")
		}
	}

	if in.PaymentMethodID != nil {
		method, err := s.paymentMethodRepo.FindByID(ctx, tx, *in.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		if !method.Active {
			return nil, model.ErrPaymentMethodInactive
		}
	}

	lines := make([]model.TransactionItem, len(in.Lines))
	for i, line := range in.Lines {
		item, err := s.itemRepo.FindByID(ctx, tx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if !item.IsActive() {
			return nil, model.ErrItemInactive
		}

		stock, err := s.ledger.stockRepo.CurrentStock(ctx, tx, item.ID)
		if err != nil {
			return nil, errors.Wrap(err, "fold stock")
		}
		if stock < line.Qty {
			return nil, &model.InsufficientStockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Available: stock,
				Requested: line.Qty,
			}
		}

		lines[i] = model.NewTransactionItem(item, line.Qty)
	}

	now := time.Now()
	invoiceNumber, err := s.sequenceRepo.Next(ctx, tx, model.InvoicePrefix, now)
	if err != nil {
		return nil, errors.Wrap(err, "generate invoice number")
	}

	transaction := &model.Transaction{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		InvoiceNumber:   invoiceNumber,
		Items:           lines,
		TotalAmount:     model.SumLines(lines),
		Status:          in.Status,
		PaymentMethodID: in.PaymentMethodID,
		ShippingAddress: in.ShippingAddress,
		Notes:           in.Notes,
	}

	for _, line := range lines {
		_, err := s.ledger.write(ctx, tx, ledgerEntry{
			ItemID:        line.ItemID,
			ItemName:      line.ItemName,
			Type:          model.MovementOut,
			Quantity:      line.Qty,
			Note:          fmt.Sprintf("sold on %s", invoiceNumber),
			Reason:        in.Reason,
			Actor:         in.Actor,
			ReferenceType: in.ReferenceType,
			ReferenceID:   transaction.ID,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := s.transactionRepo.Create(ctx, tx, transaction); err != nil {
		return nil, errors.Wrap(err, "store transaction")
	}

	return transaction, nil
}

// Checkout settles the user's cart and empties it. Either everything is written or nothing.
func (s *settlementServiceImpl) Checkout(ctx context.Context, actor model.Actor, req dto.CheckoutRequest) (transaction *model.Transaction, err error) {
	ctx, span := startSpan(ctx, "SettlementService.Checkout", attribute.String("user.id", actor.ID))
	defer func() {
		settlementCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "checkout"), outcome(err)))
		endSpan(span, err)
	}()

	if req.PaymentMethodID == "" {
		return nil, model.ErrMissingPaymentMethod
	}
	if req.ShippingAddress == "" {
		return nil, model.ErrMissingShipping
	}

	cart, err := s.cartRepo.FindByUser(ctx, nil, actor.ID)
	if err != nil {
		if errors.Is(err, model.ErrCartNotFound) {
			return nil, model.ErrCartEmpty
		}
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, model.ErrCartEmpty
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.cartRepo.LockByUser(ctx, tx, actor.ID); err != nil {
			return errors.Wrap(err, "lock cart")
		}

		cart, err := s.cartRepo.FindByUser(ctx, tx, actor.ID)
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return model.ErrCartEmpty
		}

		lines := make([]dto.Line, len(cart.Items))
		for i, line := range cart.Items {
			lines[i] = dto.Line{ItemID: line.ItemID, Qty: line.Qty}
		}

		paymentMethodID := req.PaymentMethodID
		transaction, err = s.settle(ctx, tx, settlement{
			UserID:          actor.ID,
			Actor:           actor,
			Lines:           lines,
			Status:          model.TransactionPending,
			Reason:          model.ReasonPurchased,
			ReferenceType:   model.ReferenceOrder,
			PaymentMethodID: &paymentMethodID,
			ShippingAddress: req.ShippingAddress,
			Notes:           req.Notes,
		})
		if err != nil {
			return err
		}

		if err := s.cartRepo.Clear(ctx, tx, cart.ID); err != nil {
			return errors.Wrap(err, "empty cart")
		}
		return nil
	})
	if err != nil {
		s.log.WithError(err).WithField("user_id", actor.ID).Warn("checkout rejected")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        actor.ID,
		"transaction_id": transaction.ID,
		"invoice_number": transaction.InvoiceNumber,
		"total_amount":   transaction.TotalAmount.String(),
	}).Info("checkout settled")

	return transaction, nil
}

// Cancel books the lines of a pending order back into stock and marks it CANCELLED. The
// original OUT movements stay in the ledger.
func (s *settlementServiceImpl) Cancel(ctx context.Context, actor model.Actor, transactionID string) (transaction *model.Transaction, err error) {
	ctx, span := startSpan(ctx, "SettlementService.Cancel",
		attribute.String("user.id", actor.ID),
		attribute.String("transaction.id", transactionID),
	)
	defer func() { endSpan(span, err) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.transactionRepo.FindByID(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		if current.UserID != actor.ID {
			return model.ErrTransactionNotFound
		}
		if err := current.CanCancel(); err != nil {
			return err
		}

		for _, line := range current.Items {
			_, err := s.ledger.write(ctx, tx, ledgerEntry{
				ItemID:        line.ItemID,
				ItemName:      line.ItemName,
				Type:          model.MovementIn,
				Quantity:      line.Qty,
				Note:          fmt.Sprintf("cancelled %s", current.InvoiceNumber),
				Reason:        model.ReasonReturn,
				Actor:         actor,
				ReferenceType: model.ReferenceOrder,
				ReferenceID:   current.ID,
			})
			if err != nil {
				return err
			}
		}

		if err := s.transactionRepo.MarkCancelled(ctx, tx, current.ID); err != nil {
			return err
		}

		transaction, err = s.transactionRepo.FindByID(ctx, tx, current.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        actor.ID,
		"transaction_id": transactionID,
	}).Info("order cancelled")

	return transaction, nil
}

// CreateForUser settles explicit lines on behalf of a user, as an UNPAID transaction. Repeated
// items are merged in first-seen order.
func (s *settlementServiceImpl) CreateForUser(ctx context.Context, admin model.Actor, req dto.AdminTransactionRequest) (transaction *model.Transaction, err error) {
	ctx, span := startSpan(ctx, "SettlementService.CreateForUser",
		attribute.String("user.id", req.UserID),
		attribute.String("admin.id", admin.ID),
	)
	defer func() {
		settlementCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "admin"), outcome(err)))
		endSpan(span, err)
	}()

	if req.UserID == "" {
		return nil, model.ErrMissingUser
	}
	lines, err := mergeLines(req.Items)
	if err != nil {
		return nil, err
	}

	var paymentMethodID *string
	if req.PaymentMethodID != "" {
		id := req.PaymentMethodID
		paymentMethodID = &id
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transaction, err = s.settle(ctx, tx, settlement{
			UserID:          req.UserID,
			Actor:           admin,
			Lines:           lines,
			Status:          model.TransactionUnpaid,
			Reason:          model.ReasonSold,
			ReferenceType:   model.ReferenceTransaction,
			PaymentMethodID: paymentMethodID,
			ShippingAddress: req.ShippingAddress,
			Notes:           req.Notes,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        req.UserID,
		"admin_id":       admin.ID,
		"transaction_id": transaction.ID,
		"invoice_number": transaction.InvoiceNumber,
	}).Info("transaction created")

	return transaction, nil
}

func mergeLines(items []dto.Line) ([]dto.Line, error) {
	if len(items) == 0 {
		return nil, model.ErrNoLines
	}

	merged := make([]dto.Line, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		if item.ItemID == "" {
			return nil, model.ErrInvalidItem
		}
		if item.Qty <= 0 {
			return nil, model.ErrInvalidQuantity
		}

		if i, ok := index[item.ItemID]; ok {
			merged[i].Qty += item.Qty
			continue
		}
		index[item.ItemID] = len(merged)
		merged = append(merged, item)
	}

	return merged, nil
}

// Get hides other users' transactions unless the caller is an admin.
func (s *settlementServiceImpl) Get(ctx context.Context, actor model.Actor, transactionID string) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(ctx, nil, transactionID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && transaction.UserID != actor.ID {
		return nil, model.ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *settlementServiceImpl) List(ctx context.Context, filter model.TransactionFilter) ([]*model.Transaction, int64, error) {
	transactions, total, err := s.transactionRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list transactions")
	}
	return transactions, total, nil
}
