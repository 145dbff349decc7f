package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mastermind-fa/product-inventory-api/internal/config"
	canonhttp "github.com/nhalm/canonlog/http"
	"github.com/nhalm/chikit/ratelimit"
	"github.com/nhalm/chikit/ratelimit/store"
	chikitvalidate "github.com/nhalm/chikit/validate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/mastermind-fa/product-inventory-api/docs" // Generated Swagger docs
)

type RouteConfig struct {
	ReadRPS        int
	WriteRPS       int
	MaxBodyBytes   int64
	AllowedOrigins []string
	AuthPolicy     string
	Verifier       TokenVerifier
	RequestTimeout time.Duration
}

const defaultRequestTimeout = 60 * time.Second

func DefaultRouteConfig() RouteConfig {
	return RouteConfig{
		ReadRPS:        100,
		WriteRPS:       20,
		MaxBodyBytes:   1048576,
		AllowedOrigins: []string{"*"},
		AuthPolicy:     config.AuthPolicyAll,
		RequestTimeout: defaultRequestTimeout,
	}
}

// RouteConfigFrom maps service configuration onto router settings.
func RouteConfigFrom(cfg *config.Config, verifier TokenVerifier) RouteConfig {
	return RouteConfig{
		ReadRPS:        cfg.ReadRPS,
		WriteRPS:       cfg.WriteRPS,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		AllowedOrigins: cfg.AllowedOrigins,
		AuthPolicy:     cfg.AuthPolicy,
		Verifier:       verifier,
		RequestTimeout: cfg.RequestTimeout,
	}
}

func (h *Handler) Routes() http.Handler {
	return h.RoutesWithConfig(DefaultRouteConfig())
}

func (h *Handler) RoutesWithConfig(rc RouteConfig) http.Handler {
	r := chi.NewRouter()

	requestTimeout := rc.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	st := store.NewMemory()

	readLimiter := ratelimit.NewBuilder(st).
		WithName("read").
		WithIP().
		Limit(rc.ReadRPS, time.Second)

	writeLimiter := ratelimit.NewBuilder(st).
		WithName("write").
		WithIP().
		Limit(rc.WriteRPS, time.Second)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(canonhttp.ChiMiddleware(nil))
	r.Use(chikitvalidate.MaxBodySize(rc.MaxBodyBytes))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rc.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	gateReads, gateWrites := authCoverage(rc.AuthPolicy)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(readLimiter)
			if gateReads {
				r.Use(RequireAuth(rc.Verifier))
			}
			r.Get("/products", h.ListProducts)
			r.Get("/products/{id}", h.GetProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(writeLimiter)
			if gateWrites {
				r.Use(RequireAuth(rc.Verifier))
			}
			r.Post("/products", h.CreateProduct)
			r.Put("/products/{id}", h.UpdateProduct)
			r.Delete("/products/{id}", h.DeleteProduct)
		})
	})

	return r
}

// authCoverage reports which route groups sit behind the bearer token gate.
// Unknown policies gate everything.
func authCoverage(policy string) (reads, writes bool) {
	switch policy {
	case config.AuthPolicyNone:
		return false, false
	case config.AuthPolicyWrites:
		return false, true
	default:
		return true, true
	}
}
