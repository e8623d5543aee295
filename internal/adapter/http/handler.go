package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"mesa-boost/internal/core/port"
)

// RequestObserver records per-route request metrics.
type RequestObserver interface {
	ObserveHTTP(route, method string, status int, d time.Duration)
}

// Options configures the optional parts of the handler.
type Options struct {
	// WriteRPS and WriteBurst bound purchase and cancel calls per profile.
	// A zero WriteRPS disables the limit.
	WriteRPS   float64
	WriteBurst int
	// Metrics is mounted at /metrics when set.
	Metrics  http.Handler
	Observer RequestObserver
	// Ready is called by /healthz. A nil Ready always reports healthy.
	Ready func(ctx context.Context) error
}

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds the admission and ranking services, a validator for
// request bodies and a logger. Routes are registered on a chi.Router.
type Handler struct {
	svc      port.BoostUseCase
	ranking  port.RankingUseCase
	logger   *slog.Logger
	validate *validator.Validate
	limiter  *profileLimiter
	opts     Options
	router   chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.BoostUseCase, ranking port.RankingUseCase, logger *slog.Logger, opts Options) *Handler {
	h := &Handler{
		svc:      svc,
		ranking:  ranking,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		limiter:  newProfileLimiter(opts.WriteRPS, opts.WriteBurst),
		opts:     opts,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, h.observe)

	r.Get("/healthz", h.handleHealth)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/packages", h.handlePackages)
		r.Post("/boosts/purchase", h.handlePurchase)
		r.Get("/listings/rank", h.handleRank)

		r.Route("/profiles/{profileID}", func(r chi.Router) {
			r.Get("/eligibility", h.handleEligibility)
			r.Get("/boost", h.handleStatus)
			r.Get("/boosts", h.handleHistory)
			r.With(h.limitProfile).Post("/boost/cancel", h.handleCancel)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) observe(next http.Handler) http.Handler {
	if h.opts.Observer == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		h.opts.Observer.ObserveHTTP(route, r.Method, status, time.Since(start))
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.opts.Ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.opts.Ready(ctx); err != nil {
			h.logger.Warn("health check failed", slog.Any("error", err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
