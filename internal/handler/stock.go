package handler

import (
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/middleware"
	"lpg-marketplace/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type StockHandler struct {
	stockService service.StockService
}

func NewStockHandler(stockService service.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

func (h *StockHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.StockChangeRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	result, err := h.stockService.Add(ctx, req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "stock movement recorded", result)
}

func (h *StockHandler) AddWithHistory(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.StockChangeRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	result, err := h.stockService.AddWithHistory(ctx, middleware.ActorFrom(c), req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "stock updated", result)
}

func (h *StockHandler) Levels(c echo.Context) error {
	ctx := c.Request().Context()

	levels, err := h.stockService.Levels(ctx)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", levels)
}

func (h *StockHandler) Movements(c echo.Context) error {
	ctx := c.Request().Context()

	page, err := pageFrom(c)
	if err != nil {
		return err
	}

	movements, total, err := h.stockService.Movements(ctx, c.Param("itemId"), page)
	if err != nil {
		return err
	}

	return respondPage(c, movements, page, total)
}

func (h *StockHandler) History(c echo.Context) error {
	ctx := c.Request().Context()

	page, err := pageFrom(c)
	if err != nil {
		return err
	}

	entries, total, err := h.stockService.History(ctx, c.Param("itemId"), page)
	if err != nil {
		return err
	}

	return respondPage(c, entries, page, total)
}

func (h *StockHandler) Breakdown(c echo.Context) error {
	ctx := c.Request().Context()

	rows, err := h.stockService.Breakdown(ctx, c.Param("itemId"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", rows)
}
