package wire

import (
	"net/http"

	"storefront/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	userHandler *adaptor.UserHandler,
	authn func(http.Handler) http.Handler,
) {
	// Public catalog
	r.Get("/categories", catalogHandler.ListCategories)
	r.Get("/categories/{slug}", catalogHandler.GetCategory)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", catalogHandler.ListProducts)
		// "featured" must register before the slug wildcard.
		r.Get("/featured", catalogHandler.ListFeatured)
		r.Get("/{slug}", catalogHandler.GetProduct)
	})

	r.Route("/reviews/{productID}", func(r chi.Router) {
		r.Get("/", catalogHandler.ListReviews)
		r.With(authn).Post("/", catalogHandler.CreateReview)
	})

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(authn)

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", catalogHandler.GetWishlist)
			r.Post("/", catalogHandler.AddToWishlist)
			r.Delete("/{productID}", catalogHandler.RemoveFromWishlist)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", userHandler.ListAddresses)
			r.Post("/", userHandler.CreateAddress)
			r.Patch("/{id}", userHandler.UpdateAddress)
			r.Patch("/{id}/default", userHandler.SetDefaultAddress)
			r.Delete("/{id}", userHandler.DeleteAddress)
		})
	})
}
