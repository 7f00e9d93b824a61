package service

import (
	"context"
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/repository"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"
)

type PaymentService interface {
	BulkPay(ctx context.Context, admin model.Actor, req dto.BulkPayRequest) (*model.Payment, error)
	Get(ctx context.Context, paymentID string) (*model.Payment, error)
	List(ctx context.Context, userID string, page model.Page) ([]*model.Payment, int64, error)
}

type paymentServiceImpl struct {
	db                *gorm.DB
	log               logrus.FieldLogger
	paymentRepo       repository.PaymentRepository
	paymentMethodRepo repository.PaymentMethodRepository
	transactionRepo   repository.TransactionRepository
	sequenceRepo      repository.SequenceRepository
}

func NewPaymentService(
	db *gorm.DB,
	log logrus.FieldLogger,
	paymentRepo repository.PaymentRepository,
	paymentMethodRepo repository.PaymentMethodRepository,
	transactionRepo repository.TransactionRepository,
	sequenceRepo repository.SequenceRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:                db,
		log:               log,
		paymentRepo:       paymentRepo,
		paymentMethodRepo: paymentMethodRepo,
		transactionRepo:   transactionRepo,
		sequenceRepo:      sequenceRepo,
	}
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// BulkPay settles a batch of one user's transactions under a single receipt. The batch is
// all-or-nothing: one bad transaction rejects the whole request.
func (s *paymentServiceImpl) BulkPay(ctx context.Context, admin model.Actor, req dto.BulkPayRequest) (payment *model.Payment, err error) {
	ctx, span := startSpan(ctx, "PaymentService.BulkPay",
		attribute.String("user.id", req.UserID),
		attribute.Int("transactions.count", len(req.TransactionIDs)),
	)
	defer func() {
		paymentCounter.Add(ctx, 1, metric.WithAttributes(outcome(err)))
		endSpan(span, err)
	}()

	if req.UserID == "" {
		return nil, model.ErrMissingUser
	}
	if req.PaymentMethodID == "" {
		return nil, model.ErrMissingPaymentMethod
	}
	transactionIDs := uniqueIDs(req.TransactionIDs)
	if len(transactionIDs) == 0 {
		return nil, model.ErrNoTransactions
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		method, err := s.paymentMethodRepo.FindByID(ctx, tx, req.PaymentMethodID)
		if err != nil {
			return err
		}
		if !method.Active {
			return model.ErrPaymentMethodInactive
		}

		transactions, err := s.transactionRepo.FindMany(ctx, tx, transactionIDs)
		if err != nil {
			return errors.Wrap(err, "load transactions")
		}
		if len(transactions) != len(transactionIDs) {
			return model.ErrTransactionMismatch
		}

		totalPaid := decimal.Zero
		for _, transaction := range transactions {
			if transaction.UserID != req.UserID {
				return model.ErrTransactionOwnerMismatch
			}
			if err := transaction.CanPay(); err != nil {
				return err
			}
			totalPaid = totalPaid.Add(transaction.TotalAmount)
		}

		now := time.Now()
		receiptNumber, err := s.sequenceRepo.Next(ctx, tx, model.ReceiptPrefix, now)
		if err != nil {
			return errors.Wrap(err, "generate receipt number")
		}

		payment = &model.Payment{
			ID:              uuid.NewString(),
			ReceiptNumber:   receiptNumber,
			UserID:          req.UserID,
			PaymentMethodID: method.ID,
			TransactionIDs:  transactionIDs,
			TotalPaid:       totalPaid,
			Notes:           req.Notes,
			CreatedBy:       admin.ID,
		}
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return errors.Wrap(err, "store payment")
		}

		updated, err := s.transactionRepo.MarkPaid(ctx, tx, transactionIDs, payment.ID, method.ID, now)
		if err != nil {
			return errors.Wrap(err, "mark transactions paid")
		}
		if updated != int64(len(transactionIDs)) {
			return errors.Errorf("marked %d of %d transactions paid", updated, len(transactionIDs))
		}

		return nil
	})
	if err != nil {
		s.log.WithError(err).WithField("user_id", req.UserID).Warn("bulk payment rejected")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"payment_id":     payment.ID,
		"receipt_number": payment.ReceiptNumber,
		"user_id":        payment.UserID,
		"transactions":   len(transactionIDs),
		"total_paid":     payment.TotalPaid.String(),
	}).Info("bulk payment settled")

	return payment, nil
}

func (s *paymentServiceImpl) Get(ctx context.Context, paymentID string) (*model.Payment, error) {
	return s.paymentRepo.FindByID(ctx, paymentID)
}

func (s *paymentServiceImpl) List(ctx context.Context, userID string, page model.Page) ([]*model.Payment, int64, error) {
	payments, total, err := s.paymentRepo.List(ctx, userID, page)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list payments")
	}
	return payments, total, nil
}
