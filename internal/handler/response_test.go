package handler

import (
	"encoding/json"
	"lpg-marketplace/internal/model"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", model.ErrInvalidQuantity, http.StatusBadRequest, model.ErrInvalidQuantity.Message},
		{"conflict", model.ErrTransactionAlreadyPaid, http.StatusBadRequest, model.ErrTransactionAlreadyPaid.Message},
		{"wrapped not found", errors.Wrap(model.ErrItemNotFound, "load item"), http.StatusNotFound, model.ErrItemNotFound.Message},
		{
			"insufficient stock",
			errors.Wrap(&model.InsufficientStockError{ItemName: "LPG 3 kg", Available: 2, Requested: 3}, "settle"),
			http.StatusBadRequest,
			"insufficient stock for LPG 3 kg: available 2, requested 3",
		},
		{"unauthorized", model.ErrUnauthorized, http.StatusUnauthorized, model.ErrUnauthorized.Message},
		{"forbidden", model.ErrForbidden, http.StatusForbidden, model.ErrForbidden.Message},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid request body"), http.StatusBadRequest, "invalid request body"},
		{"route not found", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := statusOf(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestSuccessEnvelopesCarryMessage(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/cart", nil), rec)
	require.NoError(t, respond(c, http.StatusOK, "", map[string]string{"user_id": "user-1"}))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["message"])

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/api/checkout", nil), rec)
	require.NoError(t, respond(c, http.StatusCreated, "order created", nil))
	body = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "order created", body["message"])

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/checkout/orders", nil), rec)
	require.NoError(t, respondPage(c, []string{}, model.Page{Page: 1, Limit: 10}, 0))
	body = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["message"])
	assert.Contains(t, body, "meta")
}
