package testutil

import (
	"testing"

	domaingames "github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/snapshots"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir())
}

// WriteSeasons writes log through w, failing the test on error.
func WriteSeasons(t *testing.T, w *snapshots.Writer, log []domaingames.GameRecord) {
	t.Helper()
	if err := w.WriteSeasons(log); err != nil {
		t.Fatalf("failed to write snapshots: %v", err)
	}
}

// SnapshotPath returns the expected file path for a season snapshot.
func SnapshotPath(w *snapshots.Writer, key domaingames.SeasonKey) string {
	return snapshots.SeasonSnapshotPath(w.BasePath(), key)
}
