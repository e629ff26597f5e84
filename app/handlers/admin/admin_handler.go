package admin

import (
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type AdminHandler struct {
	render   *render.Render
	catalog  *services.CatalogService
	orderSvc *services.OrderService
	symbol   string
	logger   *zap.Logger
}

func NewAdminHandler(render *render.Render, catalog *services.CatalogService, orderSvc *services.OrderService, symbol string, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		render:   render,
		catalog:  catalog,
		orderSvc: orderSvc,
		symbol:   symbol,
		logger:   logger,
	}
}
