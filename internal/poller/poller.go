package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domaingames "github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/logging"
	"github.com/preston-bernstein/league-standings-service/internal/metrics"
	"github.com/preston-bernstein/league-standings-service/internal/providers"
)

const defaultInterval = 5 * time.Minute

// GameSink receives each freshly fetched game log.
type GameSink interface {
	ReplaceGames(log []domaingames.GameRecord)
}

// SnapshotWriter persists the game log to disk, one file per season.
type SnapshotWriter interface {
	WriteSeasons(log []domaingames.GameRecord) error
}

// Poller fetches the game log on an interval, hands it to the sink and
// writes season snapshots.
type Poller struct {
	provider providers.GameProvider
	sink     GameSink
	writer   SnapshotWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	fetchMu  sync.Mutex
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// maxConsecutiveFailures is how many failed refreshes in a row flip readiness.
const maxConsecutiveFailures = 3

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	// Games and Seasons describe the last published log.
	Games   int
	Seasons int
	// SnapshotError is set when the last publish could not be written to disk.
	SnapshotError string
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	return !s.LastSuccess.IsZero() && !s.Failing()
}

// Failing reports whether enough refreshes have failed in a row to stop
// trusting the provider.
func (s Status) Failing() bool {
	return s.ConsecutiveFailures >= maxConsecutiveFailures
}

// New constructs a Poller with sane defaults.
func New(provider providers.GameProvider, sink GameSink, writer SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		provider: provider,
		sink:     sink,
		writer:   writer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called. The
// first refresh runs immediately.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
	defer logging.Info(p.logger, "poller stopped")
	defer p.stopTicker()

	_ = p.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case <-p.ticker.C:
			_ = p.Refresh(ctx)
		}
	}
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// Refresh fetches the log once and publishes it. Concurrent calls are
// serialized so the sink never sees an older log after a newer one.
func (p *Poller) Refresh(ctx context.Context) error {
	p.fetchMu.Lock()
	defer p.fetchMu.Unlock()

	start := time.Now()
	at := p.now()
	p.recordAttempt(at)
	if p.provider == nil {
		p.recordFailure(providers.ErrProviderUnavailable, at)
		return providers.ErrProviderUnavailable
	}

	log, err := p.provider.FetchGames(ctx)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "poller fetch failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, at)
		return err
	}

	seasons := p.publish(log)
	p.recordSuccess(at, len(log), seasons)
	logging.Info(p.logger, "poller refreshed games",
		logging.FieldCount, len(log),
		logging.FieldSeasons, seasons,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

// publish hands log to the sink and the snapshot writer and returns the
// number of seasons in it. An empty log leaves the existing snapshots alone.
func (p *Poller) publish(log []domaingames.GameRecord) int {
	if p.sink != nil {
		p.sink.ReplaceGames(log)
	}

	seen := make(map[domaingames.SeasonKey]struct{})
	for _, g := range log {
		seen[g.Key()] = struct{}{}
	}
	p.metrics.RecordGameLog(len(log), len(seen))

	if p.writer == nil || len(log) == 0 {
		return len(seen)
	}
	err := p.writer.WriteSeasons(log)
	p.metrics.RecordSnapshotWrite(len(seen), err)
	p.setSnapshotError(err)
	if err != nil {
		logging.Error(p.logger, "poller snapshot write failed", err)
	}
	return len(seen)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, games, seasons int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.Games = games
	p.status.Seasons = seasons
}

func (p *Poller) setSnapshotError(err error) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.SnapshotError = ""
	if err != nil {
		p.status.SnapshotError = err.Error()
	}
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Provider exposes the underlying provider (primarily for cleanup in callers).
func (p *Poller) Provider() providers.GameProvider {
	return p.provider
}
