package snapshots

import (
	"fmt"
	"path/filepath"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
)

const (
	gamesDir     = "games"
	manifestFile = "manifest.json"
)

// SeasonSnapshotPath builds the path to a season's games snapshot.
func SeasonSnapshotPath(basePath string, key games.SeasonKey) string {
	return slugSnapshotPath(basePath, key.Slug())
}

func slugSnapshotPath(basePath, slug string) string {
	return filepath.Join(basePath, gamesDir, fmt.Sprintf("%s.json", slug))
}
