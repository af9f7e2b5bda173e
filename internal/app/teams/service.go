package teams

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	domaingames "github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/domain/teams"
)

// GameLister exposes the stored game log.
type GameLister interface {
	ListGames() []domaingames.GameRecord
}

// Service derives the team directory from the game log.
type Service struct {
	games GameLister
}

// NewService constructs a Service reading from the provided log.
func NewService(games GameLister) *Service {
	return &Service{games: games}
}

// Teams returns every team that appears in the log, ordered by name.
func (s *Service) Teams() []teams.Team {
	seen := make(map[string]bool)
	var out []teams.Team
	for _, g := range s.games.ListGames() {
		for _, name := range []string{g.HomeTeam, g.AwayTeam} {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, teams.NewTeam(name))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Resolve maps a user supplied name or slug onto a known team. Exact names
// win, then case-insensitive names, then slugs, then the best fuzzy match.
func (s *Service) Resolve(query string) (teams.Team, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return teams.Team{}, false
	}
	all := s.Teams()
	for _, t := range all {
		if t.Name == query {
			return t, true
		}
	}
	for _, t := range all {
		if strings.EqualFold(t.Name, query) {
			return t, true
		}
	}
	querySlug := teams.Slugify(query)
	for _, t := range all {
		if t.Slug == querySlug {
			return t, true
		}
	}

	lookup := make(map[string]teams.Team, len(all))
	targets := make([]string, 0, len(all))
	for _, t := range all {
		lower := strings.ToLower(t.Name)
		lookup[lower] = t
		targets = append(targets, lower)
	}
	ranks := fuzzy.RankFindNormalizedFold(strings.ToLower(query), targets)
	if len(ranks) == 0 {
		return teams.Team{}, false
	}
	sort.Sort(ranks)
	return lookup[ranks[0].Target], true
}
