package system

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"log/slog"
)

const checkTimeout = 2 * time.Second

// Pinger reports whether a backing component is still reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	logger *slog.Logger
	checks map[string]Pinger
}

// NewHandler takes the named readiness checks to run on each probe.
// A nil map means the handler only reports process liveness.
func NewHandler(logger *slog.Logger, checks map[string]Pinger) *Handler {
	return &Handler{logger: logger, checks: checks}
}

// SystemHealth answers ok only when every backing store responds to a ping.
func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.logger.Error("Health check failed",
				slog.String("component", name),
				slog.String("error", err.Error()),
			)

			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status":    "degraded",
				"component": name,
			})
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
