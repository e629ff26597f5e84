package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-shop/app/helpers"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type ProductHandler struct {
	render  *render.Render
	catalog *services.CatalogService
	symbol  string
	logger  *zap.Logger
}

func NewProductHandler(render *render.Render, catalog *services.CatalogService, symbol string, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{render: render, catalog: catalog, symbol: symbol, logger: logger}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListActive(r.Context())
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"products": NewProductResponses(products, h.symbol),
	})
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusOK, NewProductResponse(*product, h.symbol))
}
