package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/league-standings-service/internal/config"
	"github.com/preston-bernstein/league-standings-service/internal/metrics"
	"github.com/preston-bernstein/league-standings-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(ctx context.Context, cfg config.Config) providers.GameProvider {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	base := selectProvider(ctx, cfg, f.logger)
	name := providerLabel(cfg.Provider, base)
	limited := providers.NewRateLimitedProvider(base, cfg.Source.RateLimit, f.logger, f.metrics, name)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, name, 0, 0)
}
