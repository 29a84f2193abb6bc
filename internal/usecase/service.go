package usecase

import (
	"storefront/internal/data/repository"
	"storefront/pkg/mailer"
	"storefront/pkg/payment"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Catalog CatalogService
	Order   OrderService
	Payment PaymentService
	Admin   AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	jwtMaker := utils.NewJWTMaker(config.JWT.Secret, config.JWT.ExpiryMinutes)
	mail := mailer.NewMailer(config.Email, log)
	paymentClient := payment.NewClient(config.Payment.APIURL, config.Payment.SecretKey)

	orders := NewOrderService(repo, log)
	return &Service{
		Auth:    NewAuthService(repo, jwtMaker, mail, log),
		User:    NewUserService(repo, log),
		Catalog: NewCatalogService(repo, log),
		Order:   orders,
		Payment: NewPaymentService(repo.WebhookEvent, orders, paymentClient, log),
		Admin:   NewAdminService(repo, log),
	}
}
