package snapshots

import (
	"os"
	"testing"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
)

func seasonGame(id string, year int, season string) games.GameRecord {
	return games.GameRecord{
		ID:        id,
		Year:      year,
		Season:    season,
		HomeTeam:  "Blue",
		AwayTeam:  "Orange",
		HomeScore: games.Numeric(3),
		AwayScore: games.Numeric(1),
		Winner:    games.WinnerOf("Blue"),
		GameType:  games.TypeRegular,
	}
}

func writeSeasons(t *testing.T, w *Writer, log []games.GameRecord) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil")
	}
	if err := w.WriteSeasons(log); err != nil {
		t.Fatalf("failed to write seasons: %v", err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, key games.SeasonKey) {
	t.Helper()
	if _, err := os.Stat(SeasonSnapshotPath(w.BasePath(), key)); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", key, err)
	}
}

func assertIDs(t *testing.T, got []games.GameRecord, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d games, want %v", len(got), want)
	}
	for i := range got {
		if got[i].ID != want[i] {
			t.Fatalf("id mismatch at %d: got %s, want %v", i, got[i].ID, want)
		}
	}
}
