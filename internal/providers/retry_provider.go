package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/logging"
	"github.com/preston-bernstein/league-standings-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// retryingProvider wraps a GameProvider with exponential backoff and records
// every attempt.
type retryingProvider struct {
	inner       GameProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner GameProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) GameProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
	}
}

func (r *retryingProvider) FetchGames(ctx context.Context) ([]games.GameRecord, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	var (
		result  []games.GameRecord
		attempt int
	)
	op := func() error {
		attempt++
		start := time.Now()
		log, err := r.inner.FetchGames(ctx)
		r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		if err != nil {
			if errors.Is(err, ErrProviderUnavailable) {
				return backoff.Permanent(err)
			}
			if attempt < r.maxAttempts {
				r.logWarn(ctx, "provider fetch retry", "attempt", attempt, "max_attempts", r.maxAttempts, logging.FieldError, err)
			}
			return err
		}
		result = log
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		r.logWarn(ctx, "provider fetch failed", "attempts", attempt, logging.FieldError, err)
		return nil, err
	}
	return result, nil
}

// Close forwards to the wrapped provider.
func (r *retryingProvider) Close(ctx context.Context) error {
	return Close(ctx, r.inner)
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logWithProvider(ctx, logging.FromContext(ctx, r.logger), slog.LevelWarn, r.name, msg, args...)
}
