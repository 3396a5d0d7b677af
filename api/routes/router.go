package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/angelmondragon/localarthub-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/localarthub-backend/api/controllers/cart"
	catalogcontrollers "github.com/angelmondragon/localarthub-backend/api/controllers/catalog"
	formcontrollers "github.com/angelmondragon/localarthub-backend/api/controllers/forms"
	storagecontrollers "github.com/angelmondragon/localarthub-backend/api/controllers/storage"
	"github.com/angelmondragon/localarthub-backend/api/middleware"
	"github.com/angelmondragon/localarthub-backend/internal/storefront"
	"github.com/angelmondragon/localarthub-backend/pkg/config"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
	"github.com/angelmondragon/localarthub-backend/pkg/redis"
)

// NewRouter mounts the storefront API. redisClient may be nil, in which case
// idempotency replay and form rate limiting are off.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	app *storefront.App,
	sessionStore sessions.Store,
	redisClient *redis.Client,
	readiness map[string]controllers.Pinger,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	// A typed nil client must not reach the middleware as a non-nil interface.
	var idempotencyStore redis.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = redisClient
	}
	idempotent := middleware.Idempotency(idempotencyStore, logg)

	formLimit := func(name string) func(http.Handler) http.Handler {
		if redisClient == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		policy := middleware.NewFormRateLimitPolicy(name, cfg.FormRateLimit.Window, cfg.FormRateLimit.Limit)
		return middleware.FormRateLimit(policy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Visitor(sessionStore, cfg.Session.CookieName, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(app.Cart, logg))
			r.Get("/badge", cartcontrollers.CartBadge(app.Cart, logg))
			r.Post("/items", cartcontrollers.CartAddItem(app.Cart, app.Cards, logg))
			r.Post("/items/detail", cartcontrollers.CartAddDetail(app.Cart, logg))
			r.Delete("/items", cartcontrollers.CartRemoveByName(app.Cart, logg))
			r.Patch("/items", cartcontrollers.CartUpdateQuantity(app.Cart, logg))
			r.Delete("/lines/{lineId}", cartcontrollers.CartRemoveLine(app.Cart, logg))
			r.Patch("/lines/{lineId}", cartcontrollers.CartUpdateLine(app.Cart, logg))
			r.Post("/coupon", cartcontrollers.CartApplyCoupon(app.Cart, logg))
			r.Delete("/coupon", cartcontrollers.CartRemoveCoupon(app.Cart, logg))
		})
		r.With(idempotent).Post("/checkout", cartcontrollers.Checkout(app.Cart, logg))

		r.Route("/forms", func(r chi.Router) {
			r.With(formLimit("newsletter"), idempotent).Post("/newsletter", formcontrollers.NewsletterSubscribe(app.Forms, logg))
			r.With(formLimit("contact"), idempotent).Post("/contact", formcontrollers.ContactSubmit(app.Forms, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/filters", catalogcontrollers.CatalogFilters(app.Catalog))
			r.Get("/cards", catalogcontrollers.CatalogCards(app.Catalog, logg))
			r.Get("/products", catalogcontrollers.CatalogProducts(app.Catalog, logg))
		})

		r.Route("/storage", func(r chi.Router) {
			r.Get("/", storagecontrollers.StorageExport(app.Store, logg))
			r.With(idempotent).Post("/import", storagecontrollers.StorageImport(app.Store, logg))
		})
	})

	return r
}
