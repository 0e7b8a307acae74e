// Package server exposes footprint calculations over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Config configures a WebAPI.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration

	// RateLimitRPS is requests per second per client; 0 disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	// TrustedProxies are peers whose forwarding headers identify the client.
	TrustedProxies []netip.Prefix

	Version string
}

// Dependencies are the domain services behind the API.
type Dependencies struct {
	Calculator Calculator
	Catalog    Catalog
}

// WebAPI is the HTTP server.
type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

const (
	defaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 5 * time.Second
)

// NewWebAPI builds the router and server for cfg.
func NewWebAPI(logger zerolog.Logger, cfg Config, deps Dependencies) *WebAPI {
	h := NewHandler(deps.Calculator, deps.Catalog, cfg.Version)

	ips := NewClientIPResolver(cfg.TrustedProxies)

	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(Logger(&logger, ips))
	router.Use(middleware.Recoverer)
	router.Use(Metrics)
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		router.Use(NewRateLimiter(cfg.RateLimitRPS, burst, ips).Middleware)
	}

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Get("/healthz", h.Health)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/footprint", h.CalculateFootprint)
		r.Get("/countries", h.ListCountries)
		r.Get("/countries/{country}", h.GetCountry)
	})

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		shutdownTimeout: timeout,
	}
}

// Handler returns the root HTTP handler.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Run listens on the configured address and serves until ctx is done.
func (w *WebAPI) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", w.server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", w.server.Addr, err)
	}
	return w.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully within
// the configured timeout. It returns nil after a clean shutdown.
func (w *WebAPI) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		w.logger.Info().Str("addr", ln.Addr().String()).Msg("starting server")
		if err := w.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.shutdownTimeout)
		defer cancel()

		if err := w.server.Shutdown(shutdownCtx); err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			return w.server.Close()
		}
		return nil
	})

	return g.Wait()
}
