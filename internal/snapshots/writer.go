package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
)

// SeasonSnapshot is the on-disk payload for one season.
type SeasonSnapshot struct {
	Year   int                `json:"year"`
	Season string             `json:"season"`
	Games  []games.GameRecord `json:"games"`
}

// Writer persists per-season snapshots and the manifest. Seasons that drop
// out of the log have their files pruned.
type Writer struct {
	basePath string
	mu       sync.Mutex
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string) *Writer {
	return &Writer{basePath: basePath}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteSeasons splits log by season and writes one file per season.
func (w *Writer) WriteSeasons(log []games.GameRecord) error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	// Keys differing only in case share a slug, and so a file.
	var (
		order   []string
		keys    = make(map[string]games.SeasonKey)
		grouped = make(map[string][]games.GameRecord)
	)
	for _, g := range log {
		slug := g.Key().Slug()
		if _, ok := grouped[slug]; !ok {
			order = append(order, slug)
			keys[slug] = g.Key()
		}
		grouped[slug] = append(grouped[slug], g)
	}

	entries := make([]SeasonEntry, 0, len(order))
	keep := make(map[string]bool, len(order))
	for _, slug := range order {
		key := keys[slug]
		snap := SeasonSnapshot{Year: key.Year, Season: key.Season, Games: grouped[slug]}
		if _, err := writeJSONAtomic(slugSnapshotPath(w.basePath, slug), snap); err != nil {
			return fmt.Errorf("write %s snapshot: %w", key, err)
		}
		keep[slug] = true
		entries = append(entries, SeasonEntry{SeasonKey: key, Slug: slug, Games: len(snap.Games)})
	}

	if err := w.pruneStale(keep); err != nil {
		return err
	}

	return writeManifest(w.basePath, Manifest{LastRefreshed: time.Now().UTC(), Seasons: entries})
}

// writeJSONAtomic replaces target with payload via a temp file and rename.
// Identical content is left untouched and reported as unchanged.
func writeJSONAtomic(target string, payload any) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return false, err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*.tmp")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return false, err
	}
	return true, os.Rename(tmp.Name(), target)
}

func (w *Writer) pruneStale(keep map[string]bool) error {
	slugs, err := listSlugs(w.basePath)
	if err != nil {
		return err
	}
	for _, slug := range slugs {
		if keep[slug] {
			continue
		}
		if err := os.Remove(slugSnapshotPath(w.basePath, slug)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func listSlugs(basePath string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(basePath, gamesDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var slugs []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(e.Name(), ".json"))
	}
	return slugs, nil
}
