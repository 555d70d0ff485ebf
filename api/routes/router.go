package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ballonsurprise/backend/api/controllers"
	"github.com/ballonsurprise/backend/api/middleware"
	cartsvc "github.com/ballonsurprise/backend/internal/cart"
	"github.com/ballonsurprise/backend/internal/catalog"
	checkoutsvc "github.com/ballonsurprise/backend/internal/checkout"
	"github.com/ballonsurprise/backend/internal/identity"
	"github.com/ballonsurprise/backend/pkg/auth/session"
	"github.com/ballonsurprise/backend/pkg/config"
	"github.com/ballonsurprise/backend/pkg/db"
	"github.com/ballonsurprise/backend/pkg/logger"
	"github.com/ballonsurprise/backend/pkg/metrics"
	"github.com/ballonsurprise/backend/pkg/redis"
)

type sessionChecker interface {
	session.AccessSessionChecker
}

// Dependencies bundles everything the router mounts.
type Dependencies struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *redis.Client
	Session sessionChecker

	Identity identity.Service
	Catalog  catalog.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   controllers.OrderReader

	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.Device(logg))

		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.Identity, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login/{provider}", controllers.AuthProviderLogin(deps.Identity, logg))

		r.With(middleware.OptionalAuth(cfg.JWT, deps.Session, logg)).
			Post("/logout", controllers.AuthLogout(deps.Identity, logg))
		r.Get("/me", controllers.AuthMe(deps.Identity, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Identity, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/bundles", controllers.CatalogBundles(deps.Catalog, logg))
		r.Get("/bundles/{bundleId}", controllers.CatalogBundle(deps.Catalog, logg))
		r.Get("/options", controllers.CatalogOptions(deps.Catalog, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.Device(logg))

		r.Get("/", controllers.CartGet(deps.Cart, logg))
		r.Post("/items/predefined", controllers.CartAddPredefined(deps.Cart, logg))
		r.Post("/items/custom", controllers.CartAddCustom(deps.Cart, logg))
		r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.Cart, logg))
		r.Delete("/", controllers.CartClear(deps.Cart, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Session, logg))

		r.Get("/api/ping", controllers.PrivatePing())

		r.With(middleware.Device(logg), middleware.Idempotency(deps.Redis, logg)).
			Post("/api/v1/checkout", controllers.Checkout(deps.Checkout, logg))

		r.Route("/api/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.Orders, logg))
			r.Get("/{orderId}", controllers.OrdersGet(deps.Orders, logg))
		})
	})

	return r
}
