package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const (
	defaultServiceName = "league-standings-service"
	otlpExportInterval = 15 * time.Second
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}
	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, nil, nil, err
	}
	provider := sdkmetric.NewMeterProvider(append(opts, sdkmetric.WithResource(res))...)

	inst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}
	rec := newRecorder(inst)
	if err := inst.observeGameLog(rec); err != nil {
		return nil, nil, nil, err
	}

	return rec, promHandler, provider.Shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(otlpExportInterval)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return exp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	ctx   context.Context
	meter metric.Meter

	requests          metric.Int64Counter
	requestLatencyMs  metric.Float64Histogram
	providerAttempts  metric.Int64Counter
	providerErrors    metric.Int64Counter
	providerLatencyMs metric.Float64Histogram
	rateLimitHits     metric.Int64Counter
	retryAfterMs      metric.Float64Histogram
	pollerCycles      metric.Int64Counter
	pollerErrors      metric.Int64Counter
	pollerLatencyMs   metric.Float64Histogram
	computations      metric.Int64Counter
	computeLatencyMs  metric.Float64Histogram
	tableSize         metric.Int64Histogram
	snapshotWrites    metric.Int64Counter
	snapshotErrors    metric.Int64Counter
	logGames          metric.Int64ObservableGauge
	logSeasons        metric.Int64ObservableGauge
}

// instrumentBuilder collects the first error so instrument creation reads as a list.
type instrumentBuilder struct {
	meter metric.Meter
	errs  []error
}

func (b *instrumentBuilder) counter(name, desc string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc))
	b.errs = append(b.errs, err)
	return c
}

func (b *instrumentBuilder) millis(name, desc string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc))
	b.errs = append(b.errs, err)
	return h
}

func (b *instrumentBuilder) sizes(name, desc string) metric.Int64Histogram {
	h, err := b.meter.Int64Histogram(name, metric.WithDescription(desc))
	b.errs = append(b.errs, err)
	return h
}

func (b *instrumentBuilder) gauge(name, desc string) metric.Int64ObservableGauge {
	g, err := b.meter.Int64ObservableGauge(name, metric.WithDescription(desc))
	b.errs = append(b.errs, err)
	return g
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	b := &instrumentBuilder{meter: provider.Meter(defaultServiceName)}
	inst := &otelInstruments{
		ctx:   context.Background(),
		meter: b.meter,

		requests:          b.counter("http_requests_total", "HTTP requests served"),
		requestLatencyMs:  b.millis("http_request_duration_ms", "HTTP request latency"),
		providerAttempts:  b.counter("provider_attempts_total", "Game log fetch attempts"),
		providerErrors:    b.counter("provider_errors_total", "Failed game log fetch attempts"),
		providerLatencyMs: b.millis("provider_duration_ms", "Game log fetch latency"),
		rateLimitHits:     b.counter("provider_rate_limit_hits_total", "Fetches delayed by the rate limiter"),
		retryAfterMs:      b.millis("provider_retry_after_ms", "Time spent waiting on the rate limiter"),
		pollerCycles:      b.counter("poller_cycles_total", "Refresh cycles run"),
		pollerErrors:      b.counter("poller_errors_total", "Refresh cycles that failed"),
		pollerLatencyMs:   b.millis("poller_cycle_duration_ms", "Refresh cycle latency"),
		computations:      b.counter("standings_computations_total", "Standings and team record computations"),
		computeLatencyMs:  b.millis("standings_computation_duration_ms", "Standings computation latency"),
		tableSize:         b.sizes("standings_table_teams", "Teams ranked per computation"),
		snapshotWrites:    b.counter("snapshot_writes_total", "Season snapshot write passes"),
		snapshotErrors:    b.counter("snapshot_write_errors_total", "Season snapshot write passes that failed"),
		logGames:          b.gauge("game_log_games", "Games in the current log"),
		logSeasons:        b.gauge("game_log_seasons", "Seasons in the current log"),
	}
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	return inst, nil
}

// observeGameLog reports the recorder's current log size on every collection.
func (o *otelInstruments) observeGameLog(rec *Recorder) error {
	if o == nil || rec == nil {
		return nil
	}
	_, err := o.meter.RegisterCallback(func(_ context.Context, obs metric.Observer) error {
		size := rec.GameLog()
		obs.ObserveInt64(o.logGames, int64(size.Games))
		obs.ObserveInt64(o.logSeasons, int64(size.Seasons))
		return nil
	}, o.logGames, o.logSeasons)
	return err
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	)
	o.requests.Add(o.ctx, 1, attrs)
	o.requestLatencyMs.Record(o.ctx, millis(duration), attrs)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	o.providerAttempts.Add(o.ctx, 1, attrs)
	o.providerLatencyMs.Record(o.ctx, millis(duration), attrs)
	if err != nil {
		o.providerErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, wait time.Duration) {
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	o.rateLimitHits.Add(o.ctx, 1, attrs)
	if wait > 0 {
		o.retryAfterMs.Record(o.ctx, millis(wait), attrs)
	}
}

func (o *otelInstruments) recordPoller(duration time.Duration, err error) {
	o.pollerCycles.Add(o.ctx, 1)
	o.pollerLatencyMs.Record(o.ctx, millis(duration))
	if err != nil {
		o.pollerErrors.Add(o.ctx, 1)
	}
}

func (o *otelInstruments) recordStandings(kind string, teams int, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String(AttrKind, kind))
	o.computations.Add(o.ctx, 1, attrs)
	o.computeLatencyMs.Record(o.ctx, millis(duration), attrs)
	o.tableSize.Record(o.ctx, int64(teams), attrs)
}

func (o *otelInstruments) recordSnapshotWrite(seasons int, err error) {
	attrs := metric.WithAttributes(attribute.Int(AttrSeasons, seasons))
	o.snapshotWrites.Add(o.ctx, 1, attrs)
	if err != nil {
		o.snapshotErrors.Add(o.ctx, 1, attrs)
	}
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
