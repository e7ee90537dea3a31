package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marivelle/catalog-backend/api/controllers"
	"github.com/marivelle/catalog-backend/api/middleware"
	adminsvc "github.com/marivelle/catalog-backend/internal/admin"
	authsvc "github.com/marivelle/catalog-backend/internal/auth"
	categorysvc "github.com/marivelle/catalog-backend/internal/categories"
	productsvc "github.com/marivelle/catalog-backend/internal/products"
	settingsvc "github.com/marivelle/catalog-backend/internal/settings"
	showroomsvc "github.com/marivelle/catalog-backend/internal/showrooms"
	wishlistsvc "github.com/marivelle/catalog-backend/internal/wishlist"
	"github.com/marivelle/catalog-backend/pkg/config"
	"github.com/marivelle/catalog-backend/pkg/db"
	"github.com/marivelle/catalog-backend/pkg/logger"
	"github.com/marivelle/catalog-backend/pkg/metrics"
	"github.com/marivelle/catalog-backend/pkg/redis"
	"github.com/marivelle/catalog-backend/pkg/uploads"
)

// Deps bundles everything the route table needs. cmd/api builds one after
// wiring services.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics
	Uploads     *uploads.Store
	Users       middleware.UserLoader

	Auth       authsvc.Service
	Categories categorysvc.Service
	Products   productsvc.Service
	Showrooms  showroomsvc.Service
	Settings   settingsvc.Service
	Wishlist   wishlistsvc.Service
	Admin      adminsvc.Service
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Get("/", controllers.Root(cfg))
	r.Get("/health", controllers.Health(cfg, logg, d.DB, redisPinger(d.Redis)))

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	if d.Uploads != nil {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.Uploads.Dir())))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		loginLimiter := middleware.LoginRateLimit(cfg.AuthRateLimit, rateLimitStore(d.Redis), logg)
		r.With(loginLimiter).Post("/login/access-token", controllers.Login(d.Auth, logg))
		r.Post("/login/refresh-token", controllers.Refresh(d.Auth, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(d.Categories, logg))
			r.Get("/{id}", controllers.GetCategory(d.Categories, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, d.Users, logg), middleware.RequireSuperuser(logg))
				r.Post("/", controllers.CreateCategory(d.Categories, logg))
				r.Put("/{id}", controllers.UpdateCategory(d.Categories, logg))
				r.Delete("/{id}", controllers.DeleteCategory(d.Categories, logg))
				r.Post("/{id}/image", controllers.UploadCategoryImage(d.Categories, d.Uploads, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(d.Products, logg))
			r.Get("/trending", controllers.TrendingProducts(d.Products, logg))
			r.Get("/{id}", controllers.GetProduct(d.Products, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, d.Users, logg), middleware.RequireSuperuser(logg))
				r.Post("/", controllers.CreateProduct(d.Products, d.Uploads, logg))
				r.Put("/{id}", controllers.UpdateProduct(d.Products, d.Uploads, logg))
				r.Delete("/{id}", controllers.DeleteProduct(d.Products, logg))
			})
		})

		r.Route("/showrooms", func(r chi.Router) {
			r.Get("/", controllers.ListShowrooms(d.Showrooms, logg))
			r.Get("/{id}", controllers.GetShowroom(d.Showrooms, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, d.Users, logg), middleware.RequireSuperuser(logg))
				r.Post("/", controllers.CreateShowroom(d.Showrooms, d.Uploads, logg))
				r.Put("/{id}", controllers.UpdateShowroom(d.Showrooms, d.Uploads, logg))
				r.Delete("/{id}", controllers.DeleteShowroom(d.Showrooms, logg))
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/public/general", controllers.PublicSettings(d.Settings, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, d.Users, logg), middleware.RequireSuperuser(logg))
				r.Get("/", controllers.ListSettings(d.Settings, logg))
				r.Post("/", controllers.CreateSetting(d.Settings, logg))
				r.Post("/bulk-update", controllers.BulkUpdateSettings(d.Settings, logg))
				r.Get("/{key}", controllers.GetSetting(d.Settings, logg))
				r.Put("/{key}", controllers.UpdateSetting(d.Settings, logg))
			})
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Users, logg))
			r.Get("/", controllers.ListWishlist(d.Wishlist, logg))
			r.Post("/", controllers.AddToWishlist(d.Wishlist, logg))
			r.Delete("/{productId}", controllers.RemoveFromWishlist(d.Wishlist, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Users, logg), middleware.RequireSuperuser(logg))
			r.Get("/stats", controllers.AdminStats(d.Admin, logg))
		})
	})

	return r
}

// redisPinger avoids handing the health check a typed-nil interface when
// redis is not configured.
func redisPinger(client *redis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func rateLimitStore(client *redis.Client) middleware.RateLimiterStore {
	if client == nil {
		return nil
	}
	return client
}
