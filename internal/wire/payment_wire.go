package wire

import (
	"net/http"

	"storefront/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	authn func(http.Handler) http.Handler,
) {
	r.Route("/payments", func(r chi.Router) {
		r.With(authn).Post("/create-intent", paymentHandler.CreateIntent)
		// The webhook authenticates with its HMAC signature, not a
		// bearer token.
		r.Post("/webhook", paymentHandler.Webhook)
	})
}
