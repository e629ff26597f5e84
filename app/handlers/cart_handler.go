package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-shop/app/helpers"
	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/Rakhulsr/go-shop/app/utils/sessions"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type CartHandler struct {
	render       *render.Render
	cartSvc      *services.CartService
	sessionStore sessions.SessionStore
	symbol       string
	logger       *zap.Logger
}

func NewCartHandler(render *render.Render, cartSvc *services.CartService, sessionStore sessions.SessionStore, symbol string, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		render:       render,
		cartSvc:      cartSvc,
		sessionStore: sessionStore,
		symbol:       symbol,
		logger:       logger,
	}
}

// currentCart resolves the request's cart, issuing a guest session key to
// anonymous visitors on first use.
func currentCart(cartSvc *services.CartService, store sessions.SessionStore, w http.ResponseWriter, r *http.Request) (*models.Cart, error) {
	owner, err := services.ResolveOwner(helpers.UserIDFromContext(r.Context()), sessions.ForRequest(store, w, r))
	if err != nil {
		return nil, err
	}
	return cartSvc.GetOrCreateCart(r.Context(), owner)
}

func (h *CartHandler) writeCart(w http.ResponseWriter, r *http.Request, cart *models.Cart, status int) {
	loaded, err := h.cartSvc.CartWithItems(r.Context(), cart)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, status, NewCartResponse(loaded, services.CartSubtotal(loaded.CartItems), h.symbol))
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := currentCart(h.cartSvc, h.sessionStore, w, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.writeCart(w, r, cart, http.StatusOK)
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Qty       *int   `json:"qty"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	if req.ProductID == "" {
		helpers.WriteError(h.render, w, r, h.logger, &services.ValidationError{Fields: map[string]string{"product_id": "required"}})
		return
	}
	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}

	cart, err := currentCart(h.cartSvc, h.sessionStore, w, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	item, err := h.cartSvc.AddItem(r.Context(), cart, req.ProductID, qty)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"detail": "added",
		"item":   NewCartItemResponse(*item),
	})
}

type updateItemRequest struct {
	Qty *int `json:"qty"`
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	if req.Qty == nil {
		helpers.WriteError(h.render, w, r, h.logger, &services.ValidationError{Fields: map[string]string{"qty": "required"}})
		return
	}

	cart, err := currentCart(h.cartSvc, h.sessionStore, w, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	item, err := h.cartSvc.UpdateItem(r.Context(), cart, mux.Vars(r)["id"], *req.Qty)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	if item == nil {
		h.render.JSON(w, http.StatusOK, map[string]interface{}{"detail": "removed"})
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"detail": "updated",
		"item":   NewCartItemResponse(*item),
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := currentCart(h.cartSvc, h.sessionStore, w, r)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	if err := h.cartSvc.RemoveItem(r.Context(), cart, mux.Vars(r)["id"]); err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{"detail": "removed"})
}
