package config

import "strings"

// MetricsConfig controls the scrape endpoint and the optional OTLP push.
type MetricsConfig struct {
	Enabled bool
	Port    string
	// Path is where the Prometheus exposition is mounted. Always starts with "/".
	Path         string
	OtlpEndpoint string
	OtlpInsecure bool
	ServiceName  string
}

// Pushes reports whether an OTLP collector is configured.
func (m MetricsConfig) Pushes() bool {
	return m.OtlpEndpoint != ""
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		Path:         metricsPath(envOrDefault(envMetricsPath, defaultMetricsPath)),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
	}
}

func metricsPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "/" {
		return defaultMetricsPath
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return strings.TrimSuffix(raw, "/")
}
