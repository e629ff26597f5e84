package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-shop/app/helpers"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/Rakhulsr/go-shop/app/utils/format"
	"github.com/Rakhulsr/go-shop/app/utils/sessions"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	render       *render.Render
	cartSvc      *services.CartService
	checkoutSvc  *services.CheckoutService
	sessionStore sessions.SessionStore
	symbol       string
	logger       *zap.Logger
}

func NewCheckoutHandler(render *render.Render, cartSvc *services.CartService, checkoutSvc *services.CheckoutService, sessionStore sessions.SessionStore, symbol string, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		render:       render,
		cartSvc:      cartSvc,
		checkoutSvc:  checkoutSvc,
		sessionStore: sessionStore,
		symbol:       symbol,
		logger:       logger,
	}
}

func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	cart, err := currentCart(h.cartSvc, h.sessionStore, w, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	summary, err := h.checkoutSvc.Summary(r.Context(), cart)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"cart_id":       cart.ID,
		"items":         newCartItemResponses(summary.Items),
		"subtotal":      format.Amount(summary.Subtotal),
		"shipping":      format.Amount(summary.Shipping),
		"total":         format.Amount(summary.Total),
		"total_display": format.Money(summary.Total, h.symbol),
	})
}

func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var payload services.CustomerPayload
	if err := helpers.DecodeJSON(w, r, &payload); err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	cart, err := currentCart(h.cartSvc, h.sessionStore, w, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	order, err := h.checkoutSvc.Checkout(r.Context(), cart, payload)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"detail": "created",
		"order":  NewOrderResponse(*order, h.symbol),
	})
}
