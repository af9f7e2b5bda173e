package config

import "time"

const (
	envPort            = "PORT"
	envPollInterval    = "POLL_INTERVAL"
	envProvider        = "PROVIDER"
	envProviderRate    = "PROVIDER_RATE_LIMIT"
	envGameLogPath     = "GAME_LOG_PATH"
	envDatabaseURL     = "DATABASE_URL"
	envMongoURI        = "MONGO_URI"
	envMongoDatabase   = "MONGO_DATABASE"
	envMongoCollection = "MONGO_COLLECTION"
	envTieBreak        = "STANDINGS_TIEBREAK"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envMetricsPath     = "METRICS_PATH"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken      = "ADMIN_TOKEN"
	envSnapshotDir     = "SNAPSHOT_DIR"
	envSnapshotsOn     = "SNAPSHOTS_ENABLED"

	defaultPort         = "4000"
	defaultPollInterval = 5 * Duration(time.Minute)
	defaultProvider     = "fixture"
	// Minimum spacing between upstream reads; the poller rarely gets close.
	defaultProviderRate    = 10 * Duration(time.Second)
	defaultGameLogPath     = "data/games.json"
	defaultMongoDatabase   = "league"
	defaultMongoCollection = "games"
	defaultTieBreak        = "head-to-head"
	defaultMetricsPort     = "9090"
	defaultMetricsPath     = "/metrics"
	defaultSnapshotDir     = "data/snapshots"
	defaultSnapshotsOn     = true
	defaultServiceName     = "league-standings-service"
)

var (
	providerNames = []string{"fixture", "file", "postgres", "mongodb", "mongo"}
	tieBreakNames = []string{"head-to-head", "encounter", "encounter-order", "stable"}
)
