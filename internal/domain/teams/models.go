package teams

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// NoDecisionPct is the win percentage shown before a team has a decided game.
const NoDecisionPct = ".000"

// Team is a league participant as discovered from the game log.
type Team struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewTeam builds a Team with its URL slug.
func NewTeam(name string) Team {
	return Team{Name: name, Slug: Slugify(name)}
}

// Slugify renders a team name as a URL path segment.
func Slugify(name string) string {
	return slug.Make(name)
}

// TeamRecord is a derived win/loss/tie tally. It carries no identity beyond Name.
type TeamRecord struct {
	Name        string `json:"name"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Ties        int    `json:"ties"`
	GamesPlayed int    `json:"gamesPlayed"`
	WinPct      string `json:"winPct"`
}

// Add sums the tallies of two records. WinPct is recomputed.
func (r TeamRecord) Add(other TeamRecord) TeamRecord {
	sum := TeamRecord{
		Name:        r.Name,
		Wins:        r.Wins + other.Wins,
		Losses:      r.Losses + other.Losses,
		Ties:        r.Ties + other.Ties,
		GamesPlayed: r.GamesPlayed + other.GamesPlayed,
	}
	sum.WinPct = FormatWinPct(sum.Wins, sum.Losses)
	return sum
}

// Line renders "W-L", or "W-L-T" when ties exist.
func (r TeamRecord) Line() string {
	if r.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
	}
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// FormatWinPct renders wins/(wins+losses) to three decimals without a leading
// zero, e.g. ".667" or "1.000". Ties never reach the denominator.
func FormatWinPct(wins, losses int) string {
	decided := wins + losses
	if decided <= 0 {
		return NoDecisionPct
	}
	pct := fmt.Sprintf("%.3f", float64(wins)/float64(decided))
	return strings.TrimPrefix(pct, "0")
}

// TypeRecords splits a record by game type.
type TypeRecords struct {
	Regular TeamRecord `json:"Regular"`
	Playoff TeamRecord `json:"Playoff"`
}

// CompositeRecord is one team's overall record plus its per-type split.
type CompositeRecord struct {
	Overall TeamRecord  `json:"overall"`
	ByType  TypeRecords `json:"byType"`
}

// Summary renders e.g. "12-4-1, Regular: 10-3, Playoff: 2-1". A type with no
// games played is left out.
func (c CompositeRecord) Summary() string {
	parts := []string{c.Overall.Line()}
	if c.ByType.Regular.GamesPlayed > 0 {
		parts = append(parts, "Regular: "+c.ByType.Regular.Line())
	}
	if c.ByType.Playoff.GamesPlayed > 0 {
		parts = append(parts, "Playoff: "+c.ByType.Playoff.Line())
	}
	return strings.Join(parts, ", ")
}
