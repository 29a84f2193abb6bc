package wire

import (
	"net/http"
	"time"

	"storefront/internal/adaptor"
	"storefront/internal/data/repository"
	"storefront/internal/usecase"
	"storefront/pkg/middleware"
	"storefront/pkg/ratelimit"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers, middleware and routes.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, config.Payment.WebhookSecret, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.Origin))
	r.Use(middleware.Metrics())

	jwtMaker := utils.NewJWTMaker(config.JWT.Secret, config.JWT.ExpiryMinutes)
	authn := middleware.Authenticate(jwtMaker, logger)

	// The login limiter is per route and client IP; one shared counter
	// store keeps multiple instances honest when backed by redis.
	var counters ratelimit.CounterStore
	if config.RateLimit.Store == "redis" {
		counters = ratelimit.NewRedisStore(config.Redis.Addr, config.Redis.Password, config.Redis.DB)
	} else {
		counters = ratelimit.NewMemoryStore()
	}
	limiter := middleware.RateLimit(
		counters,
		config.RateLimit.Max,
		time.Duration(config.RateLimit.WindowSec)*time.Second,
		logger,
	)

	wireAuth(r, handler.Auth, handler.User, authn, limiter)
	wireCatalog(r, handler.Catalog, handler.User, authn)
	wireOrder(r, handler.Order, authn)
	wirePayment(r, handler.Payment, authn)
	wireAdmin(r, handler.Admin, authn, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
