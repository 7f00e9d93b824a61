package handler

import (
	"errors"
	"fmt"
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/model"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type Response struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    interface{}   `json:"data,omitempty"`
	Meta    *dto.PageMeta `json:"meta,omitempty"`
}

// respond writes a success envelope. An empty message falls back to the status text.
func respond(c echo.Context, status int, message string, data interface{}) error {
	if message == "" {
		message = http.StatusText(status)
	}
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondPage(c echo.Context, data interface{}, page model.Page, total int64) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: http.StatusText(http.StatusOK), Data: data, Meta: dto.NewPageMeta(page, total)})
}

var errInvalidBody = echo.NewHTTPError(http.StatusBadRequest, "invalid request body")

// statusOf maps an error to the status code and the message shown to the caller.
func statusOf(err error) (int, string) {
	var stockErr *model.InsufficientStockError
	if errors.As(err, &stockErr) {
		return http.StatusBadRequest, stockErr.Error()
	}

	var domainErr *model.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case model.KindValidation, model.KindConflict:
			return http.StatusBadRequest, domainErr.Message
		case model.KindNotFound:
			return http.StatusNotFound, domainErr.Message
		case model.KindUnauthorized:
			return http.StatusUnauthorized, domainErr.Message
		case model.KindForbidden:
			return http.StatusForbidden, domainErr.Message
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			return httpErr.Code, http.StatusText(httpErr.Code)
		}
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}

	return http.StatusInternalServerError, "internal server error"
}

// ErrorHandler renders every error in the response envelope. Unexpected errors are logged and
// reported with an opaque message.
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := statusOf(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     c.Request().Method,
				"path":       c.Path(),
			}).Error("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, Response{Success: false, Message: message})
		}
		if err != nil {
			log.WithError(err).Error("write error response")
		}
	}
}

func pageFrom(c echo.Context) (model.Page, error) {
	var page model.Page
	err := echo.QueryParamsBinder(c).
		Int("page", &page.Page).
		Int("limit", &page.Limit).
		BindError()
	if err != nil {
		return page, echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}
	return page.Normalize(), nil
}

// parseDate accepts RFC 3339 or a plain date. A plain "to" date covers the whole day.
func parseDate(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "dates must be YYYY-MM-DD or RFC 3339")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func periodFrom(c echo.Context) (model.DateRange, error) {
	from, err := parseDate(c.QueryParam("from"), false)
	if err != nil {
		return model.DateRange{}, err
	}
	to, err := parseDate(c.QueryParam("to"), true)
	if err != nil {
		return model.DateRange{}, err
	}
	return model.DateRange{From: from, To: to}, nil
}
