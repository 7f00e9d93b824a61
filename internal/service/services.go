package service

import (
	"lpg-marketplace/internal/config"
	"lpg-marketplace/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Services bundles every service the HTTP layer and the CLI need.
type Services struct {
	Catalog    CatalogService
	Cart       CartService
	Stock      StockService
	Settlement SettlementService
	Payment    PaymentService
	Report     ReportService
}

func NewServices(db *gorm.DB, cfg config.Settlement, log logrus.FieldLogger) *Services {
	itemRepo := repository.NewItemRepository(db)
	paymentMethodRepo := repository.NewPaymentMethodRepository(db)
	stockRepo := repository.NewStockRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	reportRepo := repository.NewReportRepository(db)

	return &Services{
		Catalog: NewCatalogService(db, log, itemRepo, paymentMethodRepo, stockRepo, historyRepo),
		Cart:    NewCartService(db, cartRepo, itemRepo),
		Stock:   NewStockService(db, log, itemRepo, stockRepo, historyRepo),
		Settlement: NewSettlementService(
			db, log, cfg,
			itemRepo,
			paymentMethodRepo,
			cartRepo,
			transactionRepo,
			sequenceRepo,
			stockRepo,
			historyRepo,
		),
		Payment: NewPaymentService(db, log, paymentRepo, paymentMethodRepo, transactionRepo, sequenceRepo),
		Report:  NewReportService(reportRepo),
	}
}
