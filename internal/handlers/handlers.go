package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dftlabs/refengine/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

// Pinger checks datastore liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// QueueStats reads the level-recalc queue depth by status.
type QueueStats interface {
	Stats(ctx context.Context) (map[domain.JobStatus]int64, error)
}

// Handlers is the ops-only HTTP surface: health, queue stats and
// prometheus metrics. The engine has no business endpoints.
type Handlers struct {
	db    Pinger
	queue QueueStats
}

func New(db Pinger, queue QueueStats) *Handlers {
	return &Handlers{db: db, queue: queue}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
	)
	r.Get("/healthz", h.Healthz)
	r.Get("/stats", h.Stats)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		zap.L().Error("healthcheck failed", zap.Error(err))
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queue.Stats(r.Context())
	if err != nil {
		http.Error(w, "can't read queue stats", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
