package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/league-standings-service/internal/http/handlers"
	"github.com/preston-bernstein/league-standings-service/internal/http/middleware"
)

// NewRouter registers HTTP routes on a gorilla/mux router. Admin routes are
// mounted only when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, logger *slog.Logger) nethttp.Handler {
	r := mux.NewRouter()
	r.StrictSlash(true)
	r.Use(middleware.RouteTemplate)
	handler.Register(r)
	if admin != nil {
		admin.Register(r)
	}
	r.NotFoundHandler = handlers.NotFound(logger)
	r.MethodNotAllowedHandler = handlers.MethodNotAllowed(logger)
	return r
}
