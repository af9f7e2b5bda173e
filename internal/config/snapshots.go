package config

// SnapshotConfig controls on-disk copies of the game log.
type SnapshotConfig struct {
	Enabled bool
	Dir     string
}

func loadSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Enabled: boolEnvOrDefault(envSnapshotsOn, defaultSnapshotsOn),
		Dir:     envOrDefault(envSnapshotDir, defaultSnapshotDir),
	}
}
