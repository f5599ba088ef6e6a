package ops

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"attritionlens/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Health is the body of /healthz
type Health struct {
	Status    string    `json:"status"`
	Source    string    `json:"source,omitempty"`
	Signature string    `json:"signature,omitempty"`
	Rows      int       `json:"rows"`
	Sessions  int       `json:"sessions"`
	LoadedAt  time.Time `json:"loaded_at,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Healthy reports whether the dataset is currently usable
func (h Health) Healthy() bool { return h.Error == "" }

// HealthFunc inspects the running service
type HealthFunc func(ctx context.Context) Health

// Config holds ops server configuration
type Config struct {
	Port    string
	Profile bool
}

// NewRouter builds the operator endpoints: /healthz and, when enabled,
// the pprof handlers under /debug.
func NewRouter(cfg Config, health HealthFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 5*time.Second)
		defer cancel()

		h := health(ctx)
		status := http.StatusOK
		h.Status = "ok"
		if !h.Healthy() {
			status = http.StatusServiceUnavailable
			h.Status = "unavailable"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(h); err != nil {
			internal.DefaultLogger.With("Ops").Warn("failed to encode health: %v", err)
		}
	})

	if cfg.Profile {
		r.Mount("/debug", middleware.Profiler())
	}
	return r
}

// NewServer wraps the router in an http.Server listening on cfg.Port.
func NewServer(cfg Config, health HealthFunc) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, health),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
