package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/league-standings-service/internal/http/middleware"
	"github.com/preston-bernstein/league-standings-service/internal/http/requestutil"
	"github.com/preston-bernstein/league-standings-service/internal/logging"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err, slog.Int(logging.FieldStatusCode, status))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	body := ErrorResponse{Error: message, RequestID: middleware.RequestIDFromContext(r.Context())}
	if body.RequestID == "" {
		body.RequestID = r.Header.Get(requestutil.HeaderRequestID)
	}
	writeJSON(w, status, body, logger)
}

func requestLogger(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

// NotFound answers unmatched routes with an ErrorResponse.
func NotFound(logger *slog.Logger) http.Handler {
	return errorHandler(http.StatusNotFound, "not found", logger)
}

// MethodNotAllowed answers known routes hit with the wrong verb.
func MethodNotAllowed(logger *slog.Logger) http.Handler {
	return errorHandler(http.StatusMethodNotAllowed, "method not allowed", logger)
}

func errorHandler(status int, message string, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, status, message, requestLogger(r, logger))
	})
}
