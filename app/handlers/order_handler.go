package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-shop/app/helpers"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type OrderHandler struct {
	render   *render.Render
	orderSvc *services.OrderService
	symbol   string
	logger   *zap.Logger
}

func NewOrderHandler(render *render.Render, orderSvc *services.OrderService, symbol string, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{render: render, orderSvc: orderSvc, symbol: symbol, logger: logger}
}

func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderSvc.ListForUser(r.Context(), helpers.UserIDFromContext(r.Context()))
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"orders": NewOrderResponses(orders, h.symbol),
	})
}

func (h *OrderHandler) MyOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderSvc.GetForUser(r.Context(), helpers.UserIDFromContext(r.Context()), mux.Vars(r)["number"])
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusOK, NewOrderResponse(*order, h.symbol))
}

// CSRFToken hands the masked token to script clients; it is empty when
// CSRF protection is off.
func CSRFToken(rd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rd.JSON(w, http.StatusOK, map[string]string{"csrf_token": csrf.Token(r)})
	}
}
