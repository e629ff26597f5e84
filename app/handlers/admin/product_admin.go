package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-shop/app/handlers"
	"github.com/Rakhulsr/go-shop/app/helpers"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListAll(r.Context())
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"products": handlers.NewProductResponses(products, h.symbol),
	})
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := helpers.DecodeJSON(w, r, &in); err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	product, err := h.catalog.Create(r.Context(), in)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, handlers.NewProductResponse(*product, h.symbol))
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := helpers.DecodeJSON(w, r, &in); err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	product, err := h.catalog.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusOK, handlers.NewProductResponse(*product, h.symbol))
}

func (h *AdminHandler) DeactivateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.catalog.Deactivate(r.Context(), id); err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{"detail": "deactivated"})
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.catalog.Delete(r.Context(), id); err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	if admin := helpers.UserFromContext(r.Context()); admin != nil {
		h.logger.Info("product removed by admin", zap.String("product_id", id), zap.String("admin_id", admin.ID))
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{"detail": "deleted"})
}
