package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jusunglee/kana/internal/web/handlers"
	"github.com/jusunglee/kana/internal/web/middleware"
)

type Config struct {
	MaxTextBytes int
	// RateLimit caps POST requests per IP within RateWindow.
	RateLimit int
	// LookupRateLimit caps GET requests, which the demo page issues while
	// the user types.
	LookupRateLimit int
	RateWindow      time.Duration
	AllowedOrigins  []string
}

func DefaultConfig() Config {
	return Config{
		MaxTextBytes:    4096,
		RateLimit:       60,
		LookupRateLimit: 600,
		RateWindow:      time.Minute,
	}
}

type Router struct {
	log *slog.Logger
	cfg Config
}

func NewRouter(log *slog.Logger, cfg Config) *Router {
	return &Router{log: log, cfg: cfg}
}

// Handler builds the API mux. ctx bounds the rate limiters' background sweep.
func (r *Router) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()

	convertHandler := handlers.NewConvertHandler(r.log, r.cfg.MaxTextBytes)
	lookupLimiter := middleware.NewRateLimiter(ctx, r.cfg.LookupRateLimit, r.cfg.RateWindow)
	submitLimiter := middleware.NewRateLimiter(ctx, r.cfg.RateLimit, r.cfg.RateWindow)

	mux.Handle("GET /api/v1/convert",
		middleware.Chain(
			http.HandlerFunc(convertHandler.Get),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(lookupLimiter),
			middleware.CacheControl("public, max-age=3600"),
		),
	)

	mux.Handle("POST /api/v1/convert",
		middleware.Chain(
			http.HandlerFunc(convertHandler.Create),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(submitLimiter),
		),
	)

	return middleware.CORS(r.cfg.AllowedOrigins)(mux)
}
