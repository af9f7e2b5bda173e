package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/league-standings-service/internal/config"
	"github.com/preston-bernstein/league-standings-service/internal/metrics"
	"github.com/preston-bernstein/league-standings-service/internal/testutil"
)

func stubMetricsSetup(t *testing.T, stub *testutil.MetricsSetup) {
	t.Helper()
	orig := metricsSetup
	metricsSetup = stub.Setup
	t.Cleanup(func() { metricsSetup = orig })
}

func TestBuildMetricsFallsBackOnSetupFailure(t *testing.T) {
	stubMetricsSetup(t, &testutil.MetricsSetup{Err: errors.New("exporter down")})
	logger, buf := testutil.NewBufferLogger()

	srv := newServerWithMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, logger, testutil.GoodProvider{}, nil)
	if srv.metrics == nil {
		t.Fatal("expected fallback recorder on setup failure")
	}
	if srv.metricsServer != nil || srv.metricsStop != nil {
		t.Fatal("expected no scrape server or exporter shutdown after failure")
	}
	if !buf.Contains("exporter down") {
		t.Fatalf("expected setup failure logged, got %q", buf.String())
	}
}

func TestBuildMetricsDisabledKeepsRecorderWithoutServer(t *testing.T) {
	stub := &testutil.MetricsSetup{Handler: http.NotFoundHandler()}
	stubMetricsSetup(t, stub)

	srv := newServerWithMetrics(config.Config{}, nil, testutil.GoodProvider{}, nil)
	if srv.metrics == nil {
		t.Fatal("expected recorder when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatal("expected no scrape server when metrics disabled")
	}
	if cfgs := stub.Configs(); len(cfgs) != 1 || cfgs[0].Enabled {
		t.Fatalf("expected one disabled setup call, got %+v", cfgs)
	}
}

func TestBuildMetricsInjectedRecorderSkipsSetup(t *testing.T) {
	stub := &testutil.MetricsSetup{}
	stubMetricsSetup(t, stub)
	rec := metrics.NewRecorder()

	srv := newServerWithMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil, testutil.GoodProvider{}, rec)
	if srv.metrics != rec {
		t.Fatal("expected injected recorder to be used")
	}
	if len(stub.Configs()) != 0 {
		t.Fatal("expected setup skipped for injected recorder")
	}
}

func TestBuildMetricsMountsExpositionOnConfiguredPath(t *testing.T) {
	exposition := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("standings_computations_total 0\n"))
	})
	stub := &testutil.MetricsSetup{Handler: exposition}
	stubMetricsSetup(t, stub)

	cfg := config.Config{Metrics: config.MetricsConfig{
		Enabled:     true,
		Port:        "9999",
		Path:        "/internal/metrics",
		ServiceName: "league-standings-service",
	}}
	srv := newServerWithMetrics(cfg, nil, testutil.GoodProvider{}, nil)
	if srv.metricsServer == nil {
		t.Fatal("expected scrape server")
	}
	if got := srv.metricsServer.Addr(); got != ":9999" {
		t.Fatalf("expected metrics addr :9999, got %s", got)
	}
	if got := stub.Configs()[0].ServiceName; got != "league-standings-service" {
		t.Fatalf("expected service name passed through, got %s", got)
	}

	rr := httptest.NewRecorder()
	srv.metricsServer.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/internal/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected exposition on configured path, got %d", rr.Code)
	}
	rr = httptest.NewRecorder()
	srv.metricsServer.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected default path unmounted, got %d", rr.Code)
	}

	srv.gracefulShutdown()
	if stub.Shutdowns() != 1 {
		t.Fatalf("expected exporter shutdown once, got %d", stub.Shutdowns())
	}
}

func TestStandingsRequestsRecordComputations(t *testing.T) {
	rec := metrics.NewRecorder()
	srv := newServerWithMetrics(config.Config{}, nil, testutil.GoodProvider{}, rec)
	srv.gamesService.ReplaceGames(testutil.SampleLog())

	req := httptest.NewRequest(http.MethodGet, "/standings", nil)
	srv.Handler().ServeHTTP(httptest.NewRecorder(), req)

	if got := rec.Computations(); got != 1 {
		t.Fatalf("expected 1 standings computation, got %d", got)
	}
}
