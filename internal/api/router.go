package api

import (
	"net/http"

	"github.com/ayo6706/vendor-payouts/internal/api/handler"
	"github.com/ayo6706/vendor-payouts/internal/api/middleware"
	"github.com/ayo6706/vendor-payouts/internal/api/openapi"
	"github.com/ayo6706/vendor-payouts/internal/config"
	"github.com/ayo6706/vendor-payouts/internal/domain"
	"github.com/ayo6706/vendor-payouts/internal/idempotency"
	"github.com/ayo6706/vendor-payouts/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            handler.Pinger
	Redis         redis.Cmdable
	Tokens        middleware.TokenVerifier
	Idempotency   *idempotency.Store
	AuthService   *service.AuthService
	VendorService *service.VendorService
	PayoutService *service.PayoutService
}

type Router struct {
	deps Dependencies
}

func NewRouter(deps Dependencies) *Router {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Router{deps: deps}
}

func (api *Router) Routes() chi.Router {
	cfg := api.deps.Config
	logger := api.deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	r.Use(middleware.RecoverMiddleware(logger))
	r.Use(middleware.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID", "X-Idempotent-Replay"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handler.NewAuthHandler(api.deps.AuthService, cfg.SecureCookies())
	vendorHandler := handler.NewVendorHandler(api.deps.VendorService)
	payoutHandler := handler.NewPayoutHandler(api.deps.PayoutService)
	healthHandler := handler.NewHealthHandler(api.deps.DB, api.deps.Redis)

	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/openapi.yaml", openapi.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/openapi.yaml")))

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoggingMiddleware(logger))

		r.With(middleware.PublicRateLimiter(cfg.PublicRateLimitRPS)).Post("/v1/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(api.deps.Tokens))
			r.Use(middleware.AuthRateLimiter(cfg.AuthRateLimitRPS))

			r.Get("/v1/auth/me", authHandler.Me)

			r.Route("/v1/vendors", func(r chi.Router) {
				r.Get("/", vendorHandler.ListVendors)
				r.Post("/", vendorHandler.CreateVendor)
				r.Get("/{id}", vendorHandler.GetVendor)
				r.Put("/{id}", vendorHandler.UpdateVendor)
				r.Delete("/{id}", vendorHandler.DeleteVendor)
			})

			r.Route("/v1/payouts", func(r chi.Router) {
				r.Get("/", payoutHandler.ListPayouts)
				r.With(
					middleware.RequireRole(domain.RoleOps),
					middleware.IdempotencyMiddleware(api.deps.Idempotency, logger),
				).Post("/", payoutHandler.CreatePayout)
				r.Get("/{id}", payoutHandler.GetPayout)
				r.Post("/{id}/submit", payoutHandler.SubmitPayout)
				r.With(middleware.RequireRole(domain.RoleFinance)).Post("/{id}/approve", payoutHandler.ApprovePayout)
				r.With(middleware.RequireRole(domain.RoleFinance)).Post("/{id}/reject", payoutHandler.RejectPayout)
			})
		})
	})

	return r
}
