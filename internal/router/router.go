// Package router assembles the chi router: middleware chain and routes.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/hellosvc/hellosvc/internal/docs" // registers the swagger doc
	"github.com/hellosvc/hellosvc/internal/handler"
	"github.com/hellosvc/hellosvc/internal/metrics"
	"github.com/hellosvc/hellosvc/internal/middleware"
)

// Options carries everything the router wires together.
// Zero values disable the optional pieces.
type Options struct {
	Logger *slog.Logger

	// Metrics receives per-request observations. Nil means no-op.
	Metrics metrics.Recorder
	// Gatherer backs GET /metrics. Nil leaves the route unregistered.
	Gatherer prometheus.Gatherer

	// HealthChecks are reported by GET /readyz.
	HealthChecks []handler.Check

	// RateLimiter, when set, limits every route per client IP.
	RateLimiter *middleware.IPRateLimiter

	CORSAllowedOrigins []string

	// DocsEnabled mounts the Swagger UI under /docs/.
	DocsEnabled bool

	// IsDevelopment drops HSTS from the security headers.
	IsDevelopment bool
}

const docsPrefix = "/docs"

// New builds the application router.
func New(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := opts.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	h := handler.New()
	healthHandler := handler.NewHealthHandler(opts.HealthChecks...)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: opts.IsDevelopment,
		DocsPrefix:    docsPrefix,
	}))
	r.Use(middleware.Logger(logger))
	// Metrics sits outside Recoverer so recovered panics are counted as 500s.
	r.Use(middleware.Metrics(recorder))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(opts.CORSAllowedOrigins)))
	if opts.RateLimiter != nil {
		r.Use(middleware.RateLimit(opts.RateLimiter, logger))
	}
	r.Use(chimiddleware.GetHead)

	r.Get("/", h.Hello)
	r.Get("/status", h.Status)

	// Operational endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	if opts.Gatherer != nil {
		r.Get("/metrics", handler.NewMetricsHandler(opts.Gatherer).Metrics)
	}

	if opts.DocsEnabled {
		r.Get(docsPrefix, http.RedirectHandler(docsPrefix+"/index.html", http.StatusMovedPermanently).ServeHTTP)
		r.Get(docsPrefix+"/*", httpSwagger.Handler(
			httpSwagger.URL(docsPrefix+"/doc.json"),
		))
	}

	// A route is a (method, path) pair, so a known path with an unrouted
	// method is just as unmatched as an unknown path.
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	return r
}
