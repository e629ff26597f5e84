package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
)

const maxBodyBytes = 1 << 20

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

// UserFromContext is only set behind the admin middleware.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(ContextKeyUser).(*models.User)
	return user
}

// UserIDFromContext is empty for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(ContextKeyUserID).(string)
	return userID
}

// DecodeJSON reads a JSON request body into v. Malformed or oversized
// bodies are reported as invalid requests.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", services.ErrInvalidRequest)
		}
		return fmt.Errorf("%w: malformed JSON body", services.ErrInvalidRequest)
	}
	return nil
}

// ErrorResponse maps a service error to its status code and stable body.
// Unknown errors collapse to internal_error so no internal text leaks.
func ErrorResponse(err error) (int, map[string]interface{}) {
	var stockErr *services.StockError
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &stockErr):
		return http.StatusBadRequest, map[string]interface{}{
			"detail":     "insufficient_stock",
			"product_id": stockErr.ProductID,
		}
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, map[string]interface{}{
			"detail": "invalid_request",
			"fields": validationErr.Fields,
		}
	case errors.Is(err, services.ErrInvalidRequest):
		return http.StatusBadRequest, detail("invalid_request")
	case errors.Is(err, services.ErrEmptyCart):
		return http.StatusBadRequest, detail("empty_cart")
	case errors.Is(err, services.ErrInvalidStatus):
		return http.StatusBadRequest, detail("invalid_status")
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, detail("invalid_credentials")
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, detail("not_found")
	case errors.Is(err, services.ErrAccountExists):
		return http.StatusConflict, detail("account_exists")
	case errors.Is(err, services.ErrProductInUse):
		return http.StatusConflict, detail("product_in_use")
	case errors.Is(err, services.ErrOrderNumberingExhausted):
		return http.StatusConflict, detail("order_numbering_exhausted")
	default:
		return http.StatusInternalServerError, detail("internal_error")
	}
}

func WriteError(rd *render.Render, w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status, body := ErrorResponse(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	} else {
		logger.Debug("request rejected",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
	}
	rd.JSON(w, status, body)
}

func WriteDetail(rd *render.Render, w http.ResponseWriter, status int, symbol string) {
	rd.JSON(w, status, detail(symbol))
}

func detail(symbol string) map[string]interface{} {
	return map[string]interface{}{"detail": symbol}
}
