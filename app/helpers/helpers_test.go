package helpers_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rakhulsr/go-shop/app/helpers"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"invalid", fmt.Errorf("wrap: %w", services.ErrInvalidRequest), http.StatusBadRequest, "invalid_request"},
		{"empty cart", services.ErrEmptyCart, http.StatusBadRequest, "empty_cart"},
		{"status", services.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"not found", fmt.Errorf("cart item x: %w", services.ErrNotFound), http.StatusNotFound, "not_found"},
		{"exists", services.ErrAccountExists, http.StatusConflict, "account_exists"},
		{"in use", services.ErrProductInUse, http.StatusConflict, "product_in_use"},
		{"exhausted", services.ErrOrderNumberingExhausted, http.StatusConflict, "order_numbering_exhausted"},
		{"internal", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := helpers.ErrorResponse(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.detail, body["detail"])
		})
	}
}

func TestErrorResponse_StructuredErrors(t *testing.T) {
	status, body := helpers.ErrorResponse(fmt.Errorf("checkout: %w", &services.StockError{ProductID: "p-1"}))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "insufficient_stock", body["detail"])
	assert.Equal(t, "p-1", body["product_id"])

	status, body = helpers.ErrorResponse(&services.ValidationError{Fields: map[string]string{"email": "required"}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_request", body["detail"])
	assert.Equal(t, map[string]string{"email": "required"}, body["fields"])
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Qty int `json:"qty"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"qty": 3}`))
	require.NoError(t, helpers.DecodeJSON(httptest.NewRecorder(), r, &v))
	assert.Equal(t, 3, v.Qty)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"qty": `))
	assert.ErrorIs(t, helpers.DecodeJSON(httptest.NewRecorder(), r, &v), services.ErrInvalidRequest)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.ErrorIs(t, helpers.DecodeJSON(httptest.NewRecorder(), r, &v), services.ErrInvalidRequest)
}
