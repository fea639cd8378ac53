package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/PedroPerillo/dndice/internal/auth"
	"github.com/PedroPerillo/dndice/internal/common/clock"
	"github.com/PedroPerillo/dndice/internal/metrics"
	quickRollRepo "github.com/PedroPerillo/dndice/internal/repositories/quick_roll"
	diceService "github.com/PedroPerillo/dndice/internal/services/dice"
	quickRollService "github.com/PedroPerillo/dndice/internal/services/quick_roll"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const (
	maxRequestBytes = 1 << 16
	limiterCapacity = 10000
	limiterIdleTTL  = 10 * time.Minute
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds configuration for the HTTP API
type Config struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string

	QuickRollService quickRollService.Service
	DiceService      diceService.Service

	// Verifier checks bearer tokens. Nil means every caller is anonymous.
	Verifier *auth.Verifier

	// Store is checked by /readyz, optional
	Store Pinger

	Logger *slog.Logger
	Clock  clock.Clock

	// LocalStoreTTL is the lifetime of the anonymous preset cookie
	LocalStoreTTL time.Duration

	// CookieSecure forces the Secure attribute even on plain HTTP
	CookieSecure bool

	RateLimitRPS   float64
	RateLimitBurst int
}

// Server is the HTTP API
type Server struct {
	quickRolls    quickRollService.Service
	dice          diceService.Service
	verifier      *auth.Verifier
	store         Pinger
	logger        *slog.Logger
	clock         clock.Clock
	localStoreTTL time.Duration
	cookieSecure  bool
	validate      *validator.Validate

	rps       rate.Limit
	burst     int
	limiterMu sync.Mutex
	limiters  *expirable.LRU[string, *rate.Limiter]

	router     chi.Router
	httpServer *http.Server
}

// New creates the API server and its routes
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.QuickRollService == nil {
		return nil, ErrNilQuickRollService
	}

	if cfg.DiceService == nil {
		return nil, ErrNilDiceService
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	ttl := cfg.LocalStoreTTL
	if ttl <= 0 {
		ttl = quickRollRepo.DefaultLocalTTL
	}

	s := &Server{
		quickRolls:    cfg.QuickRollService,
		dice:          cfg.DiceService,
		verifier:      cfg.Verifier,
		store:         cfg.Store,
		logger:        logger.With("component", "http"),
		clock:         clk,
		localStoreTTL: ttl,
		cookieSecure:  cfg.CookieSecure,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		rps:           rate.Limit(cfg.RateLimitRPS),
		burst:         cfg.RateLimitBurst,
		limiters:      expirable.NewLRU[string, *rate.Limiter](limiterCapacity, nil, limiterIdleTTL),
	}

	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(metrics.Middleware)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.rateLimitMiddleware)
		r.Use(s.identityMiddleware)

		r.Post("/roll", s.handleRoll)

		r.Route("/quick-rolls", func(r chi.Router) {
			r.Get("/", s.handleListQuickRolls)
			r.Post("/", s.handleCreateQuickRoll)
			r.Get("/{id}", s.handleGetQuickRoll)
			r.Put("/{id}", s.handleUpdateQuickRoll)
			r.Delete("/{id}", s.handleDeleteQuickRoll)
		})
	})

	return r
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Stop is called. It returns http.ErrServerClosed after a clean stop.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
