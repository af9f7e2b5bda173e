package standings

import (
	"sort"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
)

// TieBreak selects how teams level on win percentage and wins are ordered.
type TieBreak int

const (
	// TieBreakHeadToHead ranks level teams by their record against each other,
	// then alphabetically.
	TieBreakHeadToHead TieBreak = iota
	// TieBreakEncounterOrder keeps level teams in the order they first appear
	// in the log.
	TieBreakEncounterOrder
)

// ParseTieBreak maps a config value to a TieBreak. Unknown values use head-to-head.
func ParseTieBreak(raw string) TieBreak {
	switch raw {
	case "encounter", "encounter-order", "stable":
		return TieBreakEncounterOrder
	default:
		return TieBreakHeadToHead
	}
}

func (t TieBreak) String() string {
	if t == TieBreakEncounterOrder {
		return "encounter"
	}
	return "head-to-head"
}

// Option configures a standings computation.
type Option func(*options)

type options struct {
	tieBreak TieBreak
}

// WithTieBreak overrides the default head-to-head rule.
func WithTieBreak(t TieBreak) Option {
	return func(o *options) { o.tieBreak = t }
}

func newOptions(opts []Option) options {
	o := options{tieBreak: TieBreakHeadToHead}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// breakTies reorders each run of level teams by a mini-table built from the
// games played among the run's members, falling back to name.
func breakTies(ranked []*tally, log []games.GameRecord) {
	for start := 0; start < len(ranked); {
		end := start + 1
		for end < len(ranked) && level(ranked[start], ranked[end]) {
			end++
		}
		if end-start > 1 {
			orderGroup(ranked[start:end], log)
		}
		start = end
	}
}

func orderGroup(group []*tally, log []games.GameRecord) {
	members := make(map[string]bool, len(group))
	for _, t := range group {
		members[t.name] = true
	}

	mini := newLedger()
	for _, t := range group {
		mini.entry(t.name)
	}
	for _, g := range log {
		if g.HomeTeam == g.AwayTeam || !members[g.HomeTeam] || !members[g.AwayTeam] {
			continue
		}
		mini.add(g)
	}

	sort.SliceStable(group, func(i, j int) bool {
		a, b := mini.byName[group[i].name], mini.byName[group[j].name]
		if c := comparePct(a.wins, a.losses, b.wins, b.losses); c != 0 {
			return c > 0
		}
		if a.wins != b.wins {
			return a.wins > b.wins
		}
		return group[i].name < group[j].name
	})
}
