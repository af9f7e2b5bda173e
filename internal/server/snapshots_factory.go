package server

import (
	"log/slog"

	"github.com/preston-bernstein/league-standings-service/internal/config"
	"github.com/preston-bernstein/league-standings-service/internal/logging"
	"github.com/preston-bernstein/league-standings-service/internal/snapshots"
)

// snapshotComponents share one directory: the store restores from it at boot
// and the writer refreshes it after every successful poll.
type snapshotComponents struct {
	store  snapshots.Store
	writer *snapshots.Writer
}

func buildSnapshots(cfg config.Config, logger *slog.Logger) snapshotComponents {
	if !cfg.Snapshots.Enabled || cfg.Snapshots.Dir == "" {
		logging.Info(logger, "snapshots disabled")
		return snapshotComponents{}
	}
	logging.Debug(logger, "snapshots enabled", "dir", cfg.Snapshots.Dir)
	return snapshotComponents{
		store:  snapshots.NewFSStore(cfg.Snapshots.Dir),
		writer: snapshots.NewWriter(cfg.Snapshots.Dir),
	}
}
