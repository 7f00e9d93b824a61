package handler

import (
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/middleware"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	settlementService service.SettlementService
}

func NewCheckoutHandler(settlementService service.SettlementService) *CheckoutHandler {
	return &CheckoutHandler{
		settlementService: settlementService,
	}
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	order, err := h.settlementService.Checkout(ctx, middleware.ActorFrom(c), req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "order placed", order)
}

func (h *CheckoutHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	page, err := pageFrom(c)
	if err != nil {
		return err
	}

	orders, total, err := h.settlementService.List(ctx, model.TransactionFilter{
		UserID: middleware.UserIDFrom(c),
		Status: model.TransactionStatus(c.QueryParam("status")),
		Page:   page,
	})
	if err != nil {
		return err
	}

	return respondPage(c, orders, page, total)
}

func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	actor := middleware.ActorFrom(c)
	// the storefront only ever shows the caller's own orders
	actor.Type = model.ActorUser

	order, err := h.settlementService.Get(ctx, actor, c.Param("id"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", order)
}

func (h *CheckoutHandler) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.settlementService.Cancel(ctx, middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "order cancelled", dto.CancelResponse{
		Order:  order,
		Status: "cancelled",
	})
}
