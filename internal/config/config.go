package config

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	TieBreak     string
	AdminToken   string
	Source       SourceConfig
	Snapshots    SnapshotConfig
	Metrics      MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     choiceEnvOrDefault(envProvider, defaultProvider, providerNames...),
		TieBreak:     choiceEnvOrDefault(envTieBreak, defaultTieBreak, tieBreakNames...),
		AdminToken:   envOrDefault(envAdminToken, ""),
		Source:       loadSource(),
		Snapshots:    loadSnapshots(),
		Metrics:      loadMetrics(),
	}
}
