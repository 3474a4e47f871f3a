package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/morganshaw/partslink-backend/api/controllers"
	"github.com/morganshaw/partslink-backend/api/middleware"
	cartsvc "github.com/morganshaw/partslink-backend/internal/cart"
	catalogsvc "github.com/morganshaw/partslink-backend/internal/catalog"
	checkoutsvc "github.com/morganshaw/partslink-backend/internal/checkout"
	ordersvc "github.com/morganshaw/partslink-backend/internal/orders"
	pricingsvc "github.com/morganshaw/partslink-backend/internal/pricing"
	"github.com/morganshaw/partslink-backend/pkg/config"
	"github.com/morganshaw/partslink-backend/pkg/db"
	"github.com/morganshaw/partslink-backend/pkg/logger"
	"github.com/morganshaw/partslink-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Catalog  catalogsvc.Service
	Pricing  pricingsvc.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	var redisPinger redis.Pinger
	var idemStore redis.IdempotencyStore
	if redisClient != nil {
		redisPinger = redisClient
		idemStore = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.DealerContext(logg))
		r.Use(middleware.Idempotency(idemStore, logg, cfg.Checkout.IdempotencyTTL))

		r.Get("/ping", controllers.DealerPing())

		r.Get("/products", controllers.ListProducts(svcs.Catalog, logg))
		r.Get("/pricing/{productCode}", controllers.PriceProduct(svcs.Pricing, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Put("/items/{productId}", controllers.CartUpdateItem(svcs.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(svcs.Cart, logg))
			r.Post("/quote", controllers.CartQuote(svcs.Cart, logg))
		})

		r.Post("/checkout", controllers.Checkout(svcs.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(svcs.Orders, logg))
		})
	})

	return r
}
