package handler

import (
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/middleware"
	"lpg-marketplace/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListItems shows active items only, unless an admin asks for ?all=true.
func (h *CatalogHandler) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	activeOnly := !(c.QueryParam("all") == "true" && middleware.ActorFrom(c).IsAdmin())
	items, err := h.catalogService.ListItems(ctx, activeOnly)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", items)
}

func (h *CatalogHandler) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	item, err := h.catalogService.GetItem(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", item)
}

func (h *CatalogHandler) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	item, err := h.catalogService.CreateItem(ctx, middleware.ActorFrom(c), req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "item created", item)
}

func (h *CatalogHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	item, err := h.catalogService.UpdateItem(ctx, c.Param("id"), req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "item updated", item)
}

func (h *CatalogHandler) ListPaymentMethods(c echo.Context) error {
	ctx := c.Request().Context()

	methods, err := h.catalogService.ListPaymentMethods(ctx, true)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", methods)
}

func (h *CatalogHandler) CreatePaymentMethod(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePaymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	method, err := h.catalogService.CreatePaymentMethod(ctx, req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "payment method created", method)
}
