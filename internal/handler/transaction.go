package handler

import (
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/middleware"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

// TransactionHandler serves the back-office view of transactions and receipts.
type TransactionHandler struct {
	settlementService service.SettlementService
	paymentService    service.PaymentService
}

func NewTransactionHandler(settlementService service.SettlementService, paymentService service.PaymentService) *TransactionHandler {
	return &TransactionHandler{
		settlementService: settlementService,
		paymentService:    paymentService,
	}
}

func (h *TransactionHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	page, err := pageFrom(c)
	if err != nil {
		return err
	}

	transactions, total, err := h.settlementService.List(ctx, model.TransactionFilter{
		UserID: c.QueryParam("user_id"),
		Status: model.TransactionStatus(c.QueryParam("status")),
		Page:   page,
	})
	if err != nil {
		return err
	}

	return respondPage(c, transactions, page, total)
}

func (h *TransactionHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AdminTransactionRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	transaction, err := h.settlementService.CreateForUser(ctx, middleware.ActorFrom(c), req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "transaction created", transaction)
}

func (h *TransactionHandler) BulkPay(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.BulkPayRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	payment, err := h.paymentService.BulkPay(ctx, middleware.ActorFrom(c), req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "payment recorded", payment)
}

func (h *TransactionHandler) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()

	page, err := pageFrom(c)
	if err != nil {
		return err
	}

	payments, total, err := h.paymentService.List(ctx, c.QueryParam("user_id"), page)
	if err != nil {
		return err
	}

	return respondPage(c, payments, page, total)
}

func (h *TransactionHandler) GetPayment(c echo.Context) error {
	ctx := c.Request().Context()

	payment, err := h.paymentService.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", payment)
}
