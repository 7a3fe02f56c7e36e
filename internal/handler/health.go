package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/agora-dev/agora/internal/logger"
)

const healthTimeout = 2 * time.Second

// Health reports 200 when the database answers a ping, 503 otherwise.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		logger.Log.Error("health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, defaultRedirect, http.StatusFound)
}
