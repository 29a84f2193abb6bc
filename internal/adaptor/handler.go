package adaptor

import (
	"errors"
	"net/http"

	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Catalog *CatalogHandler
	Order   *OrderHandler
	Payment *PaymentHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, webhookSecret string, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Catalog: NewCatalogHandler(service.Catalog, log),
		Order:   NewOrderHandler(service.Order, log),
		Payment: NewPaymentHandler(service.Payment, webhookSecret, log),
		Admin:   NewAdminHandler(service.Admin, service.Order, log),
	}
}

// handleServiceError maps a service error to the matching HTTP status.
// Anything unmapped becomes a 500 with a generic label; internals never
// leak to the caller.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, action string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "Invalid credentials")
	case errors.Is(err, usecase.ErrForbidden):
		utils.ResponseForbidden(w, "Forbidden")
	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, err.Error())
	case errors.Is(err, usecase.ErrUserExists):
		utils.ResponseConflict(w, "User already exists")
	case errors.Is(err, usecase.ErrConflict):
		utils.ResponseConflict(w, err.Error())
	case errors.Is(err, usecase.ErrInsufficientStock):
		utils.ResponseConflict(w, err.Error())
	default:
		log.Error("Unhandled service error", zap.Error(err), zap.String("action", action))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
