package snapshots

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/logging"
)

// GameSink receives a game log restored from disk.
type GameSink interface {
	ReplaceGames(log []games.GameRecord)
	Count() int
}

// Warm seeds sink from the snapshot store when it has no games yet, so the
// service can answer before the first provider fetch completes. It returns
// how many games were restored.
func Warm(store Store, sink GameSink, logger *slog.Logger) int {
	if store == nil || sink == nil {
		return 0
	}
	if n := sink.Count(); n > 0 {
		logging.Debug(logger, "snapshot warm not needed", logging.FieldCount, n)
		return 0
	}
	start := time.Now()
	log, err := store.LoadAll()
	if err != nil {
		logging.Warn(logger, "snapshot warm skipped", logging.FieldError, err)
		return 0
	}
	if len(log) == 0 {
		logging.Debug(logger, "no snapshots to restore")
		return 0
	}
	sink.ReplaceGames(log)
	logging.Info(logger, "restored games from snapshots",
		logging.FieldCount, len(log),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return len(log)
}
