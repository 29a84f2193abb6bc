package wire

import (
	"net/http"

	"storefront/internal/adaptor"
	"storefront/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	authn func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authn)
		r.Use(middleware.RequireAdmin(log))

		r.Get("/customers", adminHandler.ListCustomers)
		r.Get("/orders", adminHandler.ListOrders)
		r.Get("/stats", adminHandler.GetStats)
		r.Patch("/orders/{id}/status", adminHandler.UpdateOrderStatus)
		r.Patch("/products/{id}/stock", adminHandler.AdjustStock)
	})
}
