package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/league-standings-service/internal/logging"
)

// logWithProvider prefers the request-scoped logger carried in ctx so admin
// refreshes keep their request id. The provider name is always attached.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldProvider, provider))
	logger.Log(ctx, level, msg, args...)
}
