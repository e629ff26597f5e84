package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-shop/app/handlers"
	"github.com/Rakhulsr/go-shop/app/helpers"
	"github.com/gorilla/mux"
)

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderSvc.ListAll(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"orders": handlers.NewOrderResponses(orders, h.symbol),
	})
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusOK, handlers.NewOrderResponse(*order, h.symbol))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	order, err := h.orderSvc.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusOK, handlers.NewOrderResponse(*order, h.symbol))
}
