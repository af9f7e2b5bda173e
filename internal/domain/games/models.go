package games

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// GameType partitions the schedule. Values outside the known set are kept verbatim.
type GameType string

const (
	TypeRegular GameType = "Regular"
	TypePlayoff GameType = "Playoff"
)

// GameRecord is one row of the league game log.
type GameRecord struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Year      int      `json:"year"`
	Season    string   `json:"season"`
	HomeTeam  string   `json:"homeTeam"`
	AwayTeam  string   `json:"awayTeam"`
	HomeScore Score    `json:"homeScore"`
	AwayScore Score    `json:"awayScore"`
	Winner    Winner   `json:"winner"`
	GameType  GameType `json:"gameType"`
	Forfeit   bool     `json:"forfeit"`
}

// Decide resolves the winner against the two participants. Exact matches on the
// raw value win over the forfeit-stripped token.
func (g GameRecord) Decide() Decision {
	w := g.Winner
	switch {
	case w.Raw == TieToken:
		return DecisionTie
	case w.Raw == g.HomeTeam:
		return DecisionHome
	case w.Raw == g.AwayTeam:
		return DecisionAway
	case !w.Forfeit:
		return DecisionUnresolved
	case w.Token == TieToken:
		return DecisionTie
	case w.Token == g.HomeTeam:
		return DecisionHome
	case w.Token == g.AwayTeam:
		return DecisionAway
	default:
		return DecisionUnresolved
	}
}

// Involves reports whether team played in the game.
func (g GameRecord) Involves(team string) bool {
	return g.HomeTeam == team || g.AwayTeam == team
}

// Opponent returns the other participant, or "" when team did not play.
func (g GameRecord) Opponent(team string) string {
	switch team {
	case g.HomeTeam:
		return g.AwayTeam
	case g.AwayTeam:
		return g.HomeTeam
	default:
		return ""
	}
}

// SeasonKey identifies one season of play, e.g. 2024 Summer.
type SeasonKey struct {
	Year   int    `json:"year"`
	Season string `json:"season"`
}

// Key returns the season of the game.
func (g GameRecord) Key() SeasonKey {
	return SeasonKey{Year: g.Year, Season: g.Season}
}

// Slug renders a URL and filename safe form such as "2024-summer".
func (k SeasonKey) Slug() string {
	s := slug.Make(fmt.Sprintf("%d %s", k.Year, k.Season))
	if s == "" {
		return "unknown"
	}
	return s
}

func (k SeasonKey) String() string {
	return strings.TrimSpace(fmt.Sprintf("%s %d", k.Season, k.Year))
}
