// Package http wires the EatTrue HTTP API: the chi route tree, its middleware
// chain and the server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/internal/interfaces/http/handlers"
	"github.com/turtacn/EatTrue/internal/interfaces/http/middleware"
)

// DefaultMetricsPath is where the Prometheus handler is mounted when
// RouterConfig.MetricsPath is empty.
const DefaultMetricsPath = "/metrics"

// RouterConfig aggregates the handlers and middleware of the route tree.
// Nil handlers leave their routes unregistered.
type RouterConfig struct {
	// Handlers
	ScanHandler      *handlers.ScanHandler
	UserHandler      *handlers.UserHandler
	SubstanceHandler *handlers.SubstanceHandler
	HealthHandler    *handlers.HealthHandler

	// Middleware
	Logger      logging.Logger
	LoggingCfg  *middleware.LoggingConfig
	CORS        *middleware.CORSConfig
	RateLimiter middleware.RateLimiter
	RateLimit   middleware.RateLimitConfig
	HTTPMetrics middleware.HTTPMetrics
	MaxBodySize int64

	// Metrics exposition
	MetricsHandler http.Handler
	MetricsPath    string
}

// NewRouter builds the complete HTTP route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestContext)
	r.Use(chimw.Recoverer)

	if cfg.HTTPMetrics != nil {
		r.Use(middleware.Metrics(cfg.HTTPMetrics))
	}
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	if cfg.Logger != nil {
		lc := middleware.DefaultLoggingConfig()
		if cfg.LoggingCfg != nil {
			lc = *cfg.LoggingCfg
		}
		r.Use(middleware.RequestLogging(cfg.Logger, lc))
	}
	if cfg.RateLimiter != nil {
		r.Use(middleware.RateLimit(cfg.RateLimiter, cfg.RateLimit))
	}
	if cfg.MaxBodySize > 0 {
		r.Use(chimw.RequestSize(cfg.MaxBodySize))
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsHandler != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = DefaultMetricsPath
		}
		r.Handle(path, cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(api chi.Router) {
		registerScanRoutes(api, cfg.ScanHandler)
		registerUserRoutes(api, cfg.UserHandler)
		registerSubstanceRoutes(api, cfg.SubstanceHandler)
	})

	return r
}

func registerScanRoutes(r chi.Router, h *handlers.ScanHandler) {
	if h == nil {
		return
	}
	r.Route("/scans", func(sr chi.Router) {
		sr.Post("/text", h.AnalyzeText)
		sr.Post("/barcode", h.AnalyzeBarcode)
	})
}

func registerUserRoutes(r chi.Router, h *handlers.UserHandler) {
	if h == nil {
		return
	}
	r.Route("/users/{userID}", func(ur chi.Router) {
		ur.Get("/profile", h.GetProfile)
		ur.Put("/profile", h.UpdateProfile)
		ur.Get("/history", h.GetHistory)
	})
}

func registerSubstanceRoutes(r chi.Router, h *handlers.SubstanceHandler) {
	if h == nil {
		return
	}
	r.Route("/substances", func(sr chi.Router) {
		sr.Get("/", h.List)
		sr.Get("/{substanceID}", h.Get)
	})
}

//Personal.AI order the ending
