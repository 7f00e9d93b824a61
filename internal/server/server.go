package server

import (
	"context"
	"lpg-marketplace/internal/config"
	"lpg-marketplace/internal/handler"
	authmw "lpg-marketplace/internal/middleware"
	"lpg-marketplace/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Server struct {
	echo               *echo.Echo
	cfg                *config.Config
	log                logrus.FieldLogger
	catalogHandler     *handler.CatalogHandler
	cartHandler        *handler.CartHandler
	checkoutHandler    *handler.CheckoutHandler
	stockHandler       *handler.StockHandler
	transactionHandler *handler.TransactionHandler
	reportHandler      *handler.ReportHandler
}

func NewServer(cfg *config.Config, log logrus.FieldLogger, services *service.Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(log)
	e.Server.ReadTimeout = cfg.HTTP.ReadTimeout
	e.Server.WriteTimeout = cfg.HTTP.WriteTimeout

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.Secure())
	if cfg.RateLimit.RPS > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit.RPS))))
	}

	s := &Server{
		echo:               e,
		cfg:                cfg,
		log:                log,
		catalogHandler:     handler.NewCatalogHandler(services.Catalog),
		cartHandler:        handler.NewCartHandler(services.Cart),
		checkoutHandler:    handler.NewCheckoutHandler(services.Settlement),
		stockHandler:       handler.NewStockHandler(services.Stock),
		transactionHandler: handler.NewTransactionHandler(services.Settlement, services.Payment),
		reportHandler:      handler.NewReportHandler(services.Report),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.Response{Success: true, Message: "service is healthy", Data: map[string]string{"status": "ok"}})
	})

	auth := authmw.AuthMiddleware(s.cfg.Auth)
	admin := authmw.RequireAdmin()

	// -------- catalog --------
	api.GET("/items", s.catalogHandler.ListItems, auth)
	api.GET("/items/:id", s.catalogHandler.GetItem, auth)
	api.GET("/payment-methods", s.catalogHandler.ListPaymentMethods, auth)

	// -------- cart --------
	cart := api.Group("/cart", auth)
	cart.GET("", s.cartHandler.GetCart)
	cart.POST("/items", s.cartHandler.AddItem)
	cart.PUT("/items/:itemId", s.cartHandler.UpdateItem)
	cart.DELETE("/items/:itemId", s.cartHandler.RemoveItem)
	cart.DELETE("", s.cartHandler.Clear)

	// -------- checkout --------
	checkout := api.Group("/checkout", auth)
	checkout.POST("", s.checkoutHandler.Checkout)
	checkout.GET("/orders", s.checkoutHandler.ListOrders)
	checkout.GET("/orders/:id", s.checkoutHandler.GetOrder)
	checkout.PUT("/orders/:id/cancel", s.checkoutHandler.CancelOrder)

	// -------- stock (admin) --------
	stock := api.Group("/stock", auth, admin)
	stock.POST("/add", s.stockHandler.Add)
	stock.POST("/add-with-history", s.stockHandler.AddWithHistory)
	stock.GET("", s.stockHandler.Levels)
	stock.GET("/:itemId/movements", s.stockHandler.Movements)
	stock.GET("/:itemId/history", s.stockHandler.History)
	stock.GET("/:itemId/history/breakdown", s.stockHandler.Breakdown)

	// -------- back office --------
	backOffice := api.Group("/admin", auth, admin)
	backOffice.POST("/items", s.catalogHandler.CreateItem)
	backOffice.PUT("/items/:id", s.catalogHandler.UpdateItem)
	backOffice.POST("/payment-methods", s.catalogHandler.CreatePaymentMethod)
	backOffice.GET("/transactions", s.transactionHandler.List)
	backOffice.POST("/transactions", s.transactionHandler.Create)
	backOffice.POST("/transactions/bulk-pay", s.transactionHandler.BulkPay)
	backOffice.GET("/payments", s.transactionHandler.ListPayments)
	backOffice.GET("/payments/:id", s.transactionHandler.GetPayment)

	reports := backOffice.Group("/reports")
	reports.GET("/best-sellers", s.reportHandler.BestSellers)
	reports.GET("/sales-trend", s.reportHandler.SalesTrend)
	reports.GET("/revenue-by-payment-method", s.reportHandler.RevenueByPaymentMethod)
	reports.GET("/summary", s.reportHandler.Summary)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	s.log.WithField("address", s.cfg.HTTP.Address()).Info("starting HTTP server")
	return s.echo.Start(s.cfg.HTTP.Address())
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
