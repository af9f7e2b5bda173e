package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
)

// ErrSnapshotNotFound is returned when a season has no file on disk.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store defines how snapshots are loaded.
type Store interface {
	LoadAll() ([]games.GameRecord, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadAll rebuilds the game log from every season on disk, following the
// manifest order. Without a manifest, files are read in name order.
func (s *FSStore) LoadAll() ([]games.GameRecord, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	var slugs []string
	if m, err := ReadManifest(s.basePath); err == nil {
		slugs = m.Slugs()
	} else {
		found, listErr := listSlugs(s.basePath)
		if listErr != nil {
			return nil, listErr
		}
		slugs = found
	}

	log := []games.GameRecord{}
	for _, slug := range slugs {
		snap, err := s.loadSlug(slug)
		if err != nil {
			return nil, err
		}
		log = append(log, snap.Games...)
	}
	return log, nil
}

// loadSlug reads {basePath}/games/{slug}.json.
func (s *FSStore) loadSlug(slug string) (SeasonSnapshot, error) {
	if slug == "" {
		return SeasonSnapshot{}, errors.New("snapshot season required")
	}
	var payload SeasonSnapshot
	if err := decodeFile(slugSnapshotPath(s.basePath, slug), &payload); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SeasonSnapshot{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, slug)
		}
		return SeasonSnapshot{}, err
	}
	return payload, nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
