package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/preston-bernstein/league-standings-service/internal/metrics"
)

// MetricsSetup stands in for metrics.Setup. It records every config it is
// handed and returns Handler, or Err when set.
type MetricsSetup struct {
	Handler http.Handler
	Err     error

	mu        sync.Mutex
	configs   []metrics.TelemetryConfig
	shutdowns int
}

// Setup matches the metrics.Setup signature.
func (m *MetricsSetup) Setup(_ context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
	m.mu.Lock()
	m.configs = append(m.configs, cfg)
	m.mu.Unlock()
	if m.Err != nil {
		return nil, nil, nil, m.Err
	}
	shutdown := func(context.Context) error {
		m.mu.Lock()
		m.shutdowns++
		m.mu.Unlock()
		return nil
	}
	return metrics.NewRecorder(), m.Handler, shutdown, nil
}

// Configs returns the telemetry configs passed to Setup so far.
func (m *MetricsSetup) Configs() []metrics.TelemetryConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]metrics.TelemetryConfig(nil), m.configs...)
}

// Shutdowns reports how many times the returned shutdown func ran.
func (m *MetricsSetup) Shutdowns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shutdowns
}
