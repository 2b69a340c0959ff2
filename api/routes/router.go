package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sosmarketplace/sos-board/api/controllers"
	"github.com/sosmarketplace/sos-board/api/middleware"
	"github.com/sosmarketplace/sos-board/api/responses"
	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/internal/marketplace"
	"github.com/sosmarketplace/sos-board/internal/orders"
	"github.com/sosmarketplace/sos-board/internal/vendors"
	"github.com/sosmarketplace/sos-board/pkg/config"
	"github.com/sosmarketplace/sos-board/pkg/db"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
	"github.com/sosmarketplace/sos-board/pkg/logger"
	"github.com/sosmarketplace/sos-board/pkg/metrics"
	"github.com/sosmarketplace/sos-board/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	marketplaceService marketplace.Service,
	registerService vendors.RegisterService,
	vendorService vendors.Service,
	itemService items.Service,
	orderService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Not Found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeMethodNotAllowed, "Method Not Allowed"))
	})

	// A nil *redis.Client must not reach the middleware as a non-nil interface.
	var idempotencyStore redis.IdempotencyStore
	readiness := map[string]controllers.Pinger{"db": dbP}
	if redisClient != nil {
		idempotencyStore = redisClient
		readiness["redis"] = redisClient
	}

	registerPolicy := middleware.NewRateLimitPolicy(
		"register",
		cfg.RateLimit.RegisterWindow,
		cfg.RateLimit.RegisterIPLimit,
		cfg.RateLimit.RegisterAccountLimit,
	)
	registerLimit := middleware.RateLimit(registerPolicy, nil, logg)
	if redisClient != nil {
		registerLimit = middleware.RateLimit(registerPolicy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/marketplace", controllers.MarketplaceSnapshot(marketplaceService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Idempotency(idempotencyStore, cfg.RateLimit.IdempotencyTTL, logg))

			// Flat paths keep the full route pattern visible to the idempotency rules.
			r.With(registerLimit).Post("/vendors/register", controllers.VendorRegister(registerService, logg))
			r.Post("/vendors/delete", controllers.VendorDelete(vendorService, logg))
			r.Post("/vendors/save", controllers.VendorSaveChanges(vendorService, logg))

			r.Post("/items/save", controllers.ItemSave(itemService, logg))
			r.Post("/items/delete", controllers.ItemDelete(itemService, logg))
			r.Post("/items/sold-out", controllers.ItemsSoldOut(itemService, logg))

			r.Post("/orders/place", controllers.OrderPlace(orderService, logg))
			r.Post("/orders/clear", controllers.OrdersClear(orderService, logg))
		})
	})

	return r
}
