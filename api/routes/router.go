package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eastlify/eastlify-backend/api/controllers"
	"github.com/eastlify/eastlify-backend/api/middleware"
	"github.com/eastlify/eastlify-backend/internal/activity"
	"github.com/eastlify/eastlify-backend/internal/auth"
	"github.com/eastlify/eastlify-backend/internal/products"
	"github.com/eastlify/eastlify-backend/internal/reviews"
	"github.com/eastlify/eastlify-backend/internal/shops"
	"github.com/eastlify/eastlify-backend/pkg/config"
	"github.com/eastlify/eastlify-backend/pkg/db"
	"github.com/eastlify/eastlify-backend/pkg/enums"
	"github.com/eastlify/eastlify-backend/pkg/logger"
	"github.com/eastlify/eastlify-backend/pkg/metrics"
	"github.com/eastlify/eastlify-backend/pkg/redis"
)

// Services groups the domain services the router hands to controllers.
type Services struct {
	Auth     auth.Service
	Shops    shops.Service
	Products products.Service
	Reviews  reviews.Service
	Activity activity.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}

	loginPolicy := middleware.LoginPolicy(cfg.AuthRateLimit)
	registerPolicy := middleware.RegisterPolicy(cfg.AuthRateLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.Register(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/profile", controllers.Profile(svcs.Auth, logg))
			r.Put("/profile", controllers.UpdateProfile(svcs.Auth, logg))
		})
	})

	r.Route("/api/shops", func(r chi.Router) {
		r.Get("/", controllers.ShopsList(svcs.Shops, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Post("/", controllers.ShopCreate(svcs.Shops, logg))
			r.Get("/my", controllers.MyShop(svcs.Shops, logg))
			r.Put("/{shopId}", controllers.ShopUpdate(svcs.Shops, logg))
			r.Delete("/{shopId}", controllers.ShopDelete(svcs.Shops, logg))
			r.Get("/{shopId}/activities", controllers.ShopActivityList(svcs.Activity, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthOptional(cfg.JWT, logg))
			r.Get("/{shopId}", controllers.ShopGet(svcs.Shops, logg))
			r.Post("/{shopId}/activity", controllers.ShopActivityRecord(svcs.Activity, logg))
			r.Post("/{shopId}/reviews", controllers.ReviewCreate(svcs.Reviews, logg))
			r.Get("/{shopId}/reviews", controllers.ReviewsList(svcs.Reviews, logg))
			r.Get("/{shopId}/reviews/stats", controllers.ReviewStats(svcs.Reviews, logg))
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ProductsList(svcs.Products, logg))
		r.Get("/{productId}", controllers.ProductGet(svcs.Products, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Post("/", controllers.ProductCreate(svcs.Products, logg))
			r.Get("/my", controllers.MyProducts(svcs.Products, logg))
			r.Put("/{productId}", controllers.ProductUpdate(svcs.Products, logg))
			r.Delete("/{productId}", controllers.ProductDelete(svcs.Products, logg))
		})
	})

	r.Route("/api/reviews", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Post("/{reviewId}/flag", controllers.ReviewFlag(svcs.Reviews, logg))
	})

	r.Route("/api/admin/reviews", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
		r.Get("/", controllers.AdminReviewsList(svcs.Reviews, logg))
		r.Delete("/{reviewId}", controllers.ReviewDelete(svcs.Reviews, logg))
	})

	return r
}
