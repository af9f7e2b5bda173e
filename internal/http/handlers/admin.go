package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/league-standings-service/internal/http/requestutil"
	"github.com/preston-bernstein/league-standings-service/internal/logging"
)

// Refresher pulls a fresh game log from the provider.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Counter reports how many games are stored.
type Counter interface {
	Count() int
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	counter   Counter
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(refresher Refresher, counter Counter, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		counter:   counter,
		token:     token,
		logger:    logger,
	}
}

// Register mounts the admin routes on r.
func (h *AdminHandler) Register(r *mux.Router) {
	r.HandleFunc("/admin/refresh", h.Refresh).Methods(http.MethodPost)
}

// Refresh forces a provider fetch, which also rewrites the season snapshots.
// Guarded by ADMIN_TOKEN; returns 401 if missing or invalid.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", logger)
		return
	}

	if err := h.refresher.Refresh(r.Context()); err != nil {
		logging.Error(logger, "admin refresh failed", err)
		writeError(w, r, http.StatusBadGateway, "failed to refresh games", logger)
		return
	}

	count := 0
	if h.counter != nil {
		count = h.counter.Count()
	}
	logging.Info(logger, "admin refresh complete", slog.Int(logging.FieldCount, count))
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"games":  count,
	}, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
