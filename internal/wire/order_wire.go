package wire

import (
	"net/http"

	"storefront/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	authn func(http.Handler) http.Handler,
) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(authn)
		r.Post("/", orderHandler.CreateOrder)
		r.Get("/", orderHandler.GetUserOrders)
		r.Get("/{id}", orderHandler.GetOrder)
		r.Post("/{id}/cancel", orderHandler.CancelOrder)
	})
}
