package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/logging"
	"github.com/preston-bernstein/league-standings-service/internal/metrics"
)

// rateLimitedProvider spaces calls to the wrapped provider by at least interval.
type rateLimitedProvider struct {
	next    GameProvider
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics *metrics.Recorder
	name    string
}

// NewRateLimitedProvider returns a GameProvider that admits one call per
// interval. The first call passes immediately; later ones block until a token
// is available or ctx is done.
func NewRateLimitedProvider(next GameProvider, interval time.Duration, logger *slog.Logger, recorder *metrics.Recorder, name string) GameProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  logger,
		metrics: recorder,
		name:    name,
	}
}

func (p *rateLimitedProvider) FetchGames(ctx context.Context) ([]games.GameRecord, error) {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider unavailable")
		}
		return nil, ErrProviderUnavailable
	}
	start := time.Now()
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "rate-limited fetch canceled", logging.FieldError, err)
		return nil, err
	}
	if waited := time.Since(start); waited >= time.Millisecond {
		p.metrics.RecordRateLimit(p.name, waited)
		logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, "rate-limited provider waited", "waited_ms", waited.Milliseconds())
	}
	return p.next.FetchGames(ctx)
}

// Close forwards to the wrapped provider.
func (p *rateLimitedProvider) Close(ctx context.Context) error {
	return Close(ctx, p.next)
}
