package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/kana/internal/health"
	"github.com/jusunglee/kana/internal/logger"
	"github.com/jusunglee/kana/internal/web"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

//go:embed all:dist
var staticFiles embed.FS

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs_ := ff.NewFlagSet("kana-web")
	defaults := web.DefaultConfig()

	var (
		port            = fs_.Int64Long("port", 3000, "HTTP server port")
		healthPort      = fs_.Int64Long("health-port", 3001, "Health check server port")
		maxTextBytes    = fs_.Int64Long("max-text-bytes", int64(defaults.MaxTextBytes), "Maximum text size accepted by the convert API")
		rateLimit       = fs_.Int64Long("rate-limit", int64(defaults.RateLimit), "POST requests allowed per IP within the rate window")
		lookupRateLimit = fs_.Int64Long("lookup-rate-limit", int64(defaults.LookupRateLimit), "GET requests allowed per IP within the rate window")
		rateWindow      = fs_.DurationLong("rate-window", defaults.RateWindow, "Rate limit sliding window")
		allowedOrigins  = fs_.StringLong("allowed-origins", "", "Comma-separated list of allowed CORS origins")
		logLevel        = fs_.StringLong("log-level", "info", "Log level (debug, info, warn, error)")
		logFormat       = fs_.StringEnumLong("log-format", "Log output format", "pretty", "json")
	)

	if err := ff.Parse(fs_, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs_))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *maxTextBytes <= 0 {
		return errors.New("max-text-bytes must be positive")
	}
	if *rateLimit <= 0 || *lookupRateLimit <= 0 {
		return errors.New("rate limits must be positive")
	}

	log := logger.New(logger.Options{Level: *logLevel, Format: *logFormat})

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	router := web.NewRouter(log, web.Config{
		MaxTextBytes:    int(*maxTextBytes),
		RateLimit:       int(*rateLimit),
		LookupRateLimit: int(*lookupRateLimit),
		RateWindow:      *rateWindow,
		AllowedOrigins:  parseOrigins(*allowedOrigins),
	})

	handler, err := newSiteHandler(router.Handler(ctx))
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	healthServer := health.New(int(*healthPort))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var eg errgroup.Group

	eg.Go(func() error {
		select {
		case sig := <-sigChan:
			log.InfoContext(ctx, "received signal, shutting down gracefully", "signal", sig)
			cancel(errors.New("signal received"))
		case <-ctx.Done():
		}

		healthServer.Drain()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(ctx, "server shutdown error", "error", err)
		}
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(ctx, "health server shutdown error", "error", err)
		}
		return nil
	})

	eg.Go(func() error {
		log.InfoContext(ctx, "starting health server", "port", *healthPort)
		if err := healthServer.Start(); err != nil {
			cancel(err)
			return err
		}
		return nil
	})

	eg.Go(func() error {
		log.InfoContext(ctx, "starting web server", "port", *port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("server error: %w", err)
			cancel(err)
			return err
		}
		return nil
	})

	return eg.Wait()
}

func parseOrigins(s string) []string {
	return lo.FilterMap(strings.Split(s, ","), func(o string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(o)
		return trimmed, trimmed != ""
	})
}

// newSiteHandler serves API routes first and falls back to the embedded demo
// pages. Unknown paths get index.html.
func newSiteHandler(api http.Handler) (http.Handler, error) {
	distFS, err := fs.Sub(staticFiles, "dist")
	if err != nil {
		return nil, fmt.Errorf("creating sub filesystem: %w", err)
	}
	fileServer := http.FileServer(http.FS(distFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			api.ServeHTTP(w, r)
			return
		}

		path := r.URL.Path
		if path == "/" {
			path = "/index.html"
		}
		if _, err := fs.Stat(distFS, strings.TrimPrefix(path, "/")); err == nil {
			if strings.HasPrefix(path, "/assets/") {
				w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
			} else {
				w.Header().Set("Cache-Control", "public, s-maxage=60, max-age=0")
			}
			fileServer.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Cache-Control", "public, s-maxage=60, max-age=0")
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	}), nil
}
