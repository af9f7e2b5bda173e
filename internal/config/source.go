package config

import "time"

// SourceConfig describes where the game log is read from.
type SourceConfig struct {
	// RateLimit is the minimum spacing between provider reads.
	RateLimit time.Duration
	// FilePath is used by the "file" provider.
	FilePath string
	// DatabaseURL is a lib/pq connection string for the "postgres" provider.
	DatabaseURL string
	Mongo       MongoConfig
}

// MongoConfig is used by the "mongodb" provider.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

func loadSource() SourceConfig {
	return SourceConfig{
		RateLimit:   durationEnvOrDefault(envProviderRate, defaultProviderRate),
		FilePath:    envOrDefault(envGameLogPath, defaultGameLogPath),
		DatabaseURL: envOrDefault(envDatabaseURL, ""),
		Mongo: MongoConfig{
			URI:        envOrDefault(envMongoURI, ""),
			Database:   envOrDefault(envMongoDatabase, defaultMongoDatabase),
			Collection: envOrDefault(envMongoCollection, defaultMongoCollection),
		},
	}
}
