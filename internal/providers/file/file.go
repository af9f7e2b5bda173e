package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/providers"
)

// Provider reads the game log from a JSON export on every fetch, so edits to
// the file are picked up by the next poll.
type Provider struct {
	path string
}

// New creates a provider reading from path.
func New(path string) *Provider {
	return &Provider{path: path}
}

// FetchGames reads and decodes the export.
func (p *Provider) FetchGames(ctx context.Context) ([]games.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p == nil || p.path == "" {
		return nil, providers.ErrProviderUnavailable
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", providers.ErrProviderUnavailable, p.path)
		}
		return nil, err
	}
	return Decode(data)
}

// Decode accepts either a JSON array of games or an object keyed by game id,
// the shape realtime databases export. Object entries are ordered by key.
func Decode(data []byte) ([]games.GameRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []games.GameRecord{}, nil
	}

	switch trimmed[0] {
	case '[':
		var list []games.GameRecord
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode game list: %w", err)
		}
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = fmt.Sprintf("game-%d", i+1)
			}
		}
		return list, nil
	case '{':
		var keyed map[string]games.GameRecord
		if err := json.Unmarshal(trimmed, &keyed); err != nil {
			return nil, fmt.Errorf("decode keyed games: %w", err)
		}
		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]games.GameRecord, 0, len(keys))
		for _, k := range keys {
			g := keyed[k]
			if g.ID == "" {
				g.ID = k
			}
			out = append(out, g)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("decode games: unexpected leading %q", trimmed[0])
	}
}
