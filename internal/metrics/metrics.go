package metrics

import (
	"sync"
	"time"
)

// Snapshot is a copy of the stats recorded for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

// GameLogSize describes the most recently loaded game log.
type GameLogSize struct {
	Games   int
	Seasons int
}

// Recorder keeps in-memory counters for tests and readiness checks and
// forwards everything to the OpenTelemetry instruments when Setup enabled them.
// A nil Recorder is valid and records nothing.
type Recorder struct {
	mu             sync.Mutex
	providers      map[string]*Snapshot
	computations   int
	snapshotWrites int
	routes         map[string]int
	gameLog        GameLogSize
	otel           *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		providers: make(map[string]*Snapshot),
		routes:    make(map[string]int),
		otel:      otel,
	}
}

// RecordProviderAttempt counts a provider call and keeps its latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.update(provider, func(s *Snapshot) {
		s.Calls++
		s.LastCallLatency = duration
		if err != nil {
			s.Errors++
		}
	})
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit counts a call that waited on the limiter and keeps the wait.
func (r *Recorder) RecordRateLimit(provider string, wait time.Duration) {
	if r == nil {
		return
	}
	r.update(provider, func(s *Snapshot) {
		s.RateLimitHits++
		if wait > 0 {
			s.LastRetryAfter = wait
		}
	})
	if r.otel != nil {
		r.otel.recordRateLimit(provider, wait)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of limiter waits seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent limiter wait recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.providers[provider]; ok {
		return *s
	}
	return Snapshot{}
}

// RecordHTTPRequest tracks a served request. route should be a route
// template, not the raw path, to keep label cardinality bounded.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.routes[route]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordHTTPRequest(method, route, status, duration)
	}
}

// Requests returns how many requests were recorded against route.
func (r *Recorder) Requests(route string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.routes[route]
}

// RecordStandings tracks a standings or team-record computation.
func (r *Recorder) RecordStandings(kind string, teams int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.computations++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordStandings(kind, teams, duration)
	}
}

// Computations returns how many standings computations were recorded.
func (r *Recorder) Computations() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.computations
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// RecordGameLog stores the size of the log that was just loaded.
func (r *Recorder) RecordGameLog(games, seasons int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.gameLog = GameLogSize{Games: games, Seasons: seasons}
	r.mu.Unlock()
}

// GameLog returns the size recorded by the last RecordGameLog call.
func (r *Recorder) GameLog() GameLogSize {
	if r == nil {
		return GameLogSize{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gameLog
}

// RecordSnapshotWrite tracks one pass of season snapshot writes.
func (r *Recorder) RecordSnapshotWrite(seasons int, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.snapshotWrites++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSnapshotWrite(seasons, err)
	}
}

// SnapshotWrites returns how many snapshot passes were recorded.
func (r *Recorder) SnapshotWrites() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotWrites
}

func (r *Recorder) update(provider string, fn func(*Snapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.providers[provider]
	if !ok {
		s = &Snapshot{}
		r.providers[provider] = s
	}
	fn(s)
}
