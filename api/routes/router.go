package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockmasterhq/stockmaster-backend/api/controllers"
	"github.com/stockmasterhq/stockmaster-backend/api/middleware"
	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
	"github.com/stockmasterhq/stockmaster-backend/pkg/metrics"
)

// Deps carries everything the router needs to assemble the HTTP surface.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	Authenticator *middleware.Authenticator
	LoginLimiter  *middleware.LoginRateLimiter
	HTTPMetrics   *metrics.HTTPMetrics
	Registry      *prometheus.Registry

	Health    *controllers.HealthController
	Auth      *controllers.AuthController
	Users     *controllers.UsersController
	Products  *controllers.ProductsController
	Inventory *controllers.InventoryController
	Godowns   *controllers.GodownsController
	Shops     *controllers.ShopsController
}

// New assembles the chi router.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.CORS(deps.Config.CORS))
	r.Use(middleware.AccessLog(deps.Logger))
	r.Use(middleware.Metrics(deps.HTTPMetrics))

	r.Get("/health/live", deps.Health.Live)
	r.Get("/health/ready", deps.Health.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(deps.LoginLimiter.Middleware).Post("/login", deps.Auth.Login)
			r.Post("/refresh", deps.Auth.Refresh)
			r.With(deps.Authenticator.Middleware).Post("/logout", deps.Auth.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(deps.Authenticator.Middleware)

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", deps.Inventory.List)
				r.Post("/", deps.Inventory.Create)
				r.Get("/{id}", deps.Inventory.Get)
				r.Put("/{id}", deps.Inventory.Update)
				r.Delete("/{id}", deps.Inventory.Delete)
				r.Post("/{id}/reassign", deps.Inventory.Reassign)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", deps.Products.List)
				r.Get("/{id}", deps.Products.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(deps.Logger, enums.RoleSuperAdmin))
					r.Post("/", deps.Products.Create)
					r.Put("/{id}", deps.Products.Update)
					r.Delete("/{id}", deps.Products.Delete)
				})
			})

			r.Route("/godowns", func(r chi.Router) {
				r.Get("/", deps.Godowns.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(deps.Logger, enums.RoleSuperAdmin))
					r.Post("/", deps.Godowns.Create)
					r.Put("/{id}", deps.Godowns.Update)
					r.Delete("/{id}", deps.Godowns.Delete)
				})
			})

			r.Route("/shops", func(r chi.Router) {
				r.Get("/", deps.Shops.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(deps.Logger, enums.RoleSuperAdmin))
					r.Post("/", deps.Shops.Create)
					r.Put("/{id}", deps.Shops.Update)
					r.Delete("/{id}", deps.Shops.Delete)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireRole(deps.Logger, enums.RoleSuperAdmin))
				r.Get("/", deps.Users.List)
				r.Post("/", deps.Users.Create)
				r.Get("/{id}", deps.Users.Get)
				r.Put("/{id}", deps.Users.Update)
				r.Delete("/{id}", deps.Users.Delete)
			})
		})
	})

	return r
}
