package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/league-standings-service/internal/http/requestutil"
	"github.com/preston-bernstein/league-standings-service/internal/logging"
	"github.com/preston-bernstein/league-standings-service/internal/metrics"
)

// UnmatchedRoute labels requests no route claimed.
const UnmatchedRoute = "unmatched"

type requestIDKey struct{}

type routeKey struct{}

// LoggingMiddleware assigns a request id, hangs a request-scoped logger on the
// context, and logs plus records every request once it completes. The metric
// label is the route template reported by RouteTemplate.
func LoggingMiddleware(baseLogger *slog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := requestutil.SanitizeRequestID(r.Header.Get(requestutil.HeaderRequestID))
		w.Header().Set(requestutil.HeaderRequestID, reqID)

		logger := baseLogger.With(
			slog.String(logging.FieldRequestID, reqID),
			slog.String(logging.FieldMethod, r.Method),
			slog.String(logging.FieldPath, r.URL.Path),
		)
		route := UnmatchedRoute

		ctx := logging.WithLogger(r.Context(), logger)
		ctx = context.WithValue(ctx, requestIDKey{}, reqID)
		ctx = context.WithValue(ctx, routeKey{}, &route)
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r.WithContext(ctx))

		elapsed := time.Since(start)
		recorder.RecordHTTPRequest(r.Method, route, sw.status, elapsed)

		attrs := []any{
			slog.String("route", route),
			slog.Int(logging.FieldStatusCode, sw.status),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		}
		if r.URL.RawQuery != "" {
			attrs = append(attrs, slog.String("query", r.URL.RawQuery))
		}
		if sw.status >= http.StatusInternalServerError {
			logger.Warn("request failed", append(attrs, slog.String("client_ip", requestutil.ClientIP(r)))...)
			return
		}
		logger.Info("request complete", attrs...)
	})
}

// RouteTemplate is router middleware that reports the matched route's path
// template back to LoggingMiddleware.
func RouteTemplate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slot, ok := r.Context().Value(routeKey{}).(*string); ok {
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					*slot = tpl
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequestIDFromContext extracts the request ID stored by the logging middleware.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
