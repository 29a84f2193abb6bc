package repository

import (
	"storefront/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Pending      PendingRegistrationRepository
	Category     CategoryRepository
	Product      ProductRepository
	Order        OrderRepository
	Address      AddressRepository
	Review       ReviewRepository
	Wishlist     WishlistRepository
	WebhookEvent WebhookEventRepository
	Stats        StatsRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Pending:      NewPendingRegistrationRepository(db, log),
		Category:     NewCategoryRepository(db, log),
		Product:      NewProductRepository(db, log),
		Order:        NewOrderRepository(db, log),
		Address:      NewAddressRepository(db, log),
		Review:       NewReviewRepository(db, log),
		Wishlist:     NewWishlistRepository(db, log),
		WebhookEvent: NewWebhookEventRepository(db, log),
		Stats:        NewStatsRepository(db, log),
	}
}
