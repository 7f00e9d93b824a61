package handler

import (
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/middleware"
	"lpg-marketplace/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.cartService.Get(ctx, middleware.UserIDFrom(c))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	cart, err := h.cartService.AddItem(ctx, middleware.UserIDFrom(c), req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "item added to cart", cart)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	cart, err := h.cartService.UpdateItem(ctx, middleware.UserIDFrom(c), c.Param("itemId"), req.Qty)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "cart updated", cart)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.cartService.RemoveItem(ctx, middleware.UserIDFrom(c), c.Param("itemId"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "item removed from cart", cart)
}

func (h *CartHandler) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.cartService.Clear(ctx, middleware.UserIDFrom(c)); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "cart cleared", nil)
}
