package games

import (
	"sort"
	"strings"
	"time"

	domaingames "github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/domain/teams"
	"github.com/preston-bernstein/league-standings-service/internal/metrics"
	"github.com/preston-bernstein/league-standings-service/internal/standings"
	"github.com/preston-bernstein/league-standings-service/internal/timeutil"
)

// Store defines the contract for persisting and retrieving the game log.
type Store interface {
	ListGames() []domaingames.GameRecord
	GetGame(id string) (domaingames.GameRecord, bool)
	SetGames(log []domaingames.GameRecord)
	Len() int
}

// Service answers standings questions over the stored game log.
type Service struct {
	store    Store
	metrics  *metrics.Recorder
	tieBreak standings.TieBreak
}

// Result is one game in a team or league results feed.
type Result struct {
	domaingames.GameRecord
	Display string `json:"display"`
	// Result is W, L or T from the perspective team's side; empty without one.
	Result   string `json:"result,omitempty"`
	Opponent string `json:"opponent,omitempty"`
}

// Season summarizes one season present in the log.
type Season struct {
	domaingames.SeasonKey
	Slug  string `json:"slug"`
	Label string `json:"label"`
	Games int    `json:"games"`
}

// NewService constructs a Service with the provided Store.
func NewService(store Store, recorder *metrics.Recorder, tieBreak standings.TieBreak) *Service {
	return &Service{store: store, metrics: recorder, tieBreak: tieBreak}
}

// Games returns the games inside scope in encounter order.
func (s *Service) Games(scope domaingames.Scope) []domaingames.GameRecord {
	return domaingames.Filter(s.store.ListGames(), scope)
}

// ListGames returns the whole log in encounter order.
func (s *Service) ListGames() []domaingames.GameRecord {
	return s.store.ListGames()
}

// GameByID returns a single game if present.
func (s *Service) GameByID(id string) (domaingames.GameRecord, bool) {
	return s.store.GetGame(id)
}

// ReplaceGames swaps the stored log with a freshly fetched one.
func (s *Service) ReplaceGames(log []domaingames.GameRecord) {
	s.store.SetGames(log)
}

// Count reports how many games are stored.
func (s *Service) Count() int {
	return s.store.Len()
}

// Standings ranks every team that appears in the scoped log.
func (s *Service) Standings(scope domaingames.Scope) []teams.TeamRecord {
	start := time.Now()
	table := standings.ComputeStandings(s.Games(scope), standings.WithTieBreak(s.tieBreak))
	s.metrics.RecordStandings("standings", len(table), time.Since(start))
	return table
}

// TeamRecord computes one team's overall and per-type record within scope.
// The scope's game type is ignored so the per-type split stays meaningful.
func (s *Service) TeamRecord(scope domaingames.Scope, team string) teams.CompositeRecord {
	start := time.Now()
	scope.GameType = ""
	scope.Team = ""
	rec := standings.ComputeTeamRecord(s.Games(scope), team)
	s.metrics.RecordStandings("team_record", 1, time.Since(start))
	return rec
}

// Results lists scoped games newest first with their display score. When
// perspective is set, only that team's games are listed and each carries
// its W/L/T letter.
func (s *Service) Results(scope domaingames.Scope, perspective string) []Result {
	if perspective != "" {
		scope.Team = perspective
	}
	log := s.Games(scope)
	out := make([]Result, 0, len(log))
	for _, g := range log {
		out = append(out, Result{
			GameRecord: g,
			Display:    standings.FormatScoreDisplay(g, perspective),
			Result:     standings.ResultLetter(g, perspective),
			Opponent:   g.Opponent(perspective),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return timeutil.NewerFirst(out[i].Date, out[j].Date)
	})
	return out
}

// Seasons lists the seasons in the log, most recent year first.
func (s *Service) Seasons() []Season {
	bySlug := make(map[string]*Season)
	for _, g := range s.store.ListGames() {
		key := g.Key()
		slug := key.Slug()
		if season, ok := bySlug[slug]; ok {
			season.Games++
			continue
		}
		bySlug[slug] = &Season{SeasonKey: key, Slug: slug, Label: key.String(), Games: 1}
	}
	out := make([]Season, 0, len(bySlug))
	for _, season := range bySlug {
		out = append(out, *season)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return strings.ToLower(out[i].Season) < strings.ToLower(out[j].Season)
	})
	return out
}

// SeasonBySlug resolves a slug such as "2024-summer" to its season.
func (s *Service) SeasonBySlug(slug string) (domaingames.SeasonKey, bool) {
	for _, season := range s.Seasons() {
		if season.Slug == slug {
			return season.SeasonKey, true
		}
	}
	return domaingames.SeasonKey{}, false
}
