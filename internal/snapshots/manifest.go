package snapshots

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
)

const manifestVersion = 1

// Manifest indexes the season files on disk in game log order.
type Manifest struct {
	Version       int           `json:"version"`
	LastRefreshed time.Time     `json:"lastRefreshed"`
	Seasons       []SeasonEntry `json:"seasons"`
}

// SeasonEntry describes one season file.
type SeasonEntry struct {
	games.SeasonKey
	Slug  string `json:"slug"`
	Games int    `json:"games"`
}

// Slugs lists the distinct season slugs in manifest order.
func (m Manifest) Slugs() []string {
	slugs := make([]string, 0, len(m.Seasons))
	seen := make(map[string]bool, len(m.Seasons))
	for _, e := range m.Seasons {
		if e.Slug == "" || seen[e.Slug] {
			continue
		}
		seen[e.Slug] = true
		slugs = append(slugs, e.Slug)
	}
	return slugs
}

// TotalGames sums the game counts of every season entry.
func (m Manifest) TotalGames() int {
	total := 0
	for _, e := range m.Seasons {
		total += e.Games
	}
	return total
}

// ReadManifest loads the manifest under basePath. On error the returned
// manifest is empty but usable.
func ReadManifest(basePath string) (Manifest, error) {
	empty := Manifest{Version: manifestVersion, Seasons: []SeasonEntry{}}
	data, err := os.ReadFile(filepath.Join(basePath, manifestFile))
	if err != nil {
		return empty, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return empty, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Version != manifestVersion {
		return empty, fmt.Errorf("unsupported manifest version %d", m.Version)
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.Version = manifestVersion
	_, err := writeJSONAtomic(filepath.Join(basePath, manifestFile), m)
	return err
}
