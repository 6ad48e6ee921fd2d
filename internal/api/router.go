package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	apimw "github.com/tekmux/gatelab/internal/api/middleware"
	"github.com/tekmux/gatelab/internal/api/shared"
	"github.com/tekmux/gatelab/internal/service/auth"
	"github.com/tekmux/gatelab/internal/service/sandbox"
)

// MetricsProvider serves collected metrics and observes requests.
type MetricsProvider interface {
	apimw.RequestObserver
	Handler() http.Handler
}

// RouterConfig holds the dependencies of the HTTP API.
type RouterConfig struct {
	Sandbox       sandbox.Service
	Tokens        auth.TokenService
	TokenLifetime time.Duration
	// Metrics is optional; without it /metrics is not served.
	Metrics MetricsProvider
	// RateLimiter is optional and applies to /api routes only.
	RateLimiter *apimw.RateLimiter
	// LiveSessions reports the session count on /health.
	LiveSessions func() int
	Logger       *slog.Logger
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for router")
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apimw.NewTraceMiddleware(cfg.Logger))
	r.Use(chimw.Recoverer)
	if cfg.Metrics != nil {
		r.Use(apimw.Metrics(cfg.Metrics))
	}

	catalogHandler := NewCatalogHandler(cfg.Sandbox, cfg.Logger)
	sessionHandler := NewSessionHandler(cfg.Sandbox, cfg.Tokens, cfg.TokenLifetime, cfg.Logger)
	authMiddleware := apimw.NewAuthMiddleware(cfg.Tokens)

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Handler)
		}

		// Public endpoints
		r.Get("/gates", catalogHandler.ListGates)
		r.Get("/gates/{kind}/truth-table", catalogHandler.TruthTable)
		r.Get("/gates/{kind}/symbol", catalogHandler.Symbol)
		r.Get("/challenges", catalogHandler.ListChallenges)
		r.Post("/sessions", sessionHandler.CreateSession)

		// Session-scoped endpoints
		r.Route("/session", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/", sessionHandler.GetSession)
			r.Delete("/", sessionHandler.EndSession)
			r.Put("/mode", sessionHandler.SelectMode)
			r.Put("/learn/gate", sessionHandler.SelectGate)
			r.Post("/learn/truth-table", sessionHandler.ToggleTruthTable)

			r.Post("/challenges/{id}/start", sessionHandler.StartChallenge)
			r.Post("/challenges/back", sessionHandler.BackToList)
			r.Post("/challenges/check", sessionHandler.CheckChallenge)

			r.Route("/{ws}", func(r chi.Router) {
				r.Post("/placement", sessionHandler.BeginPlacement)
				r.Post("/placement/drop", sessionHandler.CompletePlacement)
				r.Delete("/placement", sessionHandler.CancelPlacement)
				r.Post("/gates", sessionHandler.PlaceGate)
				r.Delete("/gates", sessionHandler.ClearCanvas)
				r.Patch("/gates/{id}", sessionHandler.MoveGate)
				r.Delete("/gates/{id}", sessionHandler.RemoveGate)
				r.Post("/inputs/{name}/toggle", sessionHandler.ToggleInput)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok", Time: formatTime(time.Now())}
		if cfg.LiveSessions != nil {
			resp.Sessions = cfg.LiveSessions()
		}
		shared.RespondWithJSON(w, r, http.StatusOK, resp)
	})

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	return r
}
