package handler

import (
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

func (h *ReportHandler) BestSellers(c echo.Context) error {
	ctx := c.Request().Context()

	period, err := periodFrom(c)
	if err != nil {
		return err
	}

	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
	}

	rows, err := h.reportService.BestSellers(ctx, period, limit)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", rows)
}

func (h *ReportHandler) SalesTrend(c echo.Context) error {
	ctx := c.Request().Context()

	period, err := periodFrom(c)
	if err != nil {
		return err
	}

	points, err := h.reportService.SalesTrend(ctx, model.TrendBucket(c.QueryParam("bucket")), period)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", points)
}

func (h *ReportHandler) RevenueByPaymentMethod(c echo.Context) error {
	ctx := c.Request().Context()

	period, err := periodFrom(c)
	if err != nil {
		return err
	}

	rows, err := h.reportService.RevenueByPaymentMethod(ctx, period)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", rows)
}

func (h *ReportHandler) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	period, err := periodFrom(c)
	if err != nil {
		return err
	}

	summary, err := h.reportService.Summary(ctx, period)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", summary)
}
