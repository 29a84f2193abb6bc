package wire

import (
	"net/http"

	"storefront/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	userHandler *adaptor.UserHandler,
	authn func(http.Handler) http.Handler,
	limiter func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		// Public
		r.Post("/register", authHandler.Register)
		r.With(limiter).Post("/login", authHandler.Login)
		r.Post("/verify-email", authHandler.VerifyEmail)

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Post("/refresh", authHandler.Refresh)
			r.Get("/me", userHandler.Me)
			r.Patch("/profile", userHandler.UpdateProfile)
			r.Post("/change-password", userHandler.ChangePassword)
		})
	})
}
