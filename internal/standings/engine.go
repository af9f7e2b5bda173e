package standings

import (
	"sort"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/domain/teams"
)

// tally accumulates one team's counts while walking the log.
type tally struct {
	name                       string
	wins, losses, ties, played int
}

func (t *tally) apply(side, decision games.Decision) {
	t.played++
	switch decision {
	case games.DecisionTie:
		t.ties++
	case side:
		t.wins++
	case games.DecisionHome, games.DecisionAway:
		t.losses++
	}
}

func (t *tally) record() teams.TeamRecord {
	return teams.TeamRecord{
		Name:        t.name,
		Wins:        t.wins,
		Losses:      t.losses,
		Ties:        t.ties,
		GamesPlayed: t.played,
		WinPct:      teams.FormatWinPct(t.wins, t.losses),
	}
}

// ledger is a name-keyed accumulator that remembers first-seen order.
type ledger struct {
	byName map[string]*tally
	order  []*tally
}

func newLedger() *ledger {
	return &ledger{byName: make(map[string]*tally)}
}

func (l *ledger) entry(name string) *tally {
	if t, ok := l.byName[name]; ok {
		return t
	}
	t := &tally{name: name}
	l.byName[name] = t
	l.order = append(l.order, t)
	return t
}

// add applies g to both participants. A game listing one team on both sides
// is malformed and skipped.
func (l *ledger) add(g games.GameRecord) {
	if g.HomeTeam == g.AwayTeam {
		return
	}
	home := l.entry(g.HomeTeam)
	away := l.entry(g.AwayTeam)
	decision := g.Decide()
	home.apply(games.DecisionHome, decision)
	away.apply(games.DecisionAway, decision)
}

// ComputeStandings tallies every participant in games and returns them ranked by
// win percentage, then wins, then the configured tie-break.
func ComputeStandings(log []games.GameRecord, opts ...Option) []teams.TeamRecord {
	cfg := newOptions(opts)

	l := newLedger()
	for _, g := range log {
		l.add(g)
	}

	ranked := make([]*tally, len(l.order))
	copy(ranked, l.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ahead(ranked[i], ranked[j])
	})

	if cfg.tieBreak == TieBreakHeadToHead {
		breakTies(ranked, log)
	}

	out := make([]teams.TeamRecord, len(ranked))
	for i, t := range ranked {
		out[i] = t.record()
	}
	return out
}

// ComputeTeamRecord tallies one team across the log, split by game type. Games
// of an unrecognised type count toward Overall only. Self-play games are
// skipped as in ComputeStandings.
func ComputeTeamRecord(log []games.GameRecord, team string) teams.CompositeRecord {
	overall := &tally{name: team}
	regular := &tally{name: team}
	playoff := &tally{name: team}

	for _, g := range log {
		if g.HomeTeam == g.AwayTeam {
			continue
		}
		var side games.Decision
		switch team {
		case g.HomeTeam:
			side = games.DecisionHome
		case g.AwayTeam:
			side = games.DecisionAway
		default:
			continue
		}
		decision := g.Decide()
		overall.apply(side, decision)
		switch g.GameType {
		case games.TypeRegular:
			regular.apply(side, decision)
		case games.TypePlayoff:
			playoff.apply(side, decision)
		}
	}

	return teams.CompositeRecord{
		Overall: overall.record(),
		ByType: teams.TypeRecords{
			Regular: regular.record(),
			Playoff: playoff.record(),
		},
	}
}

// ahead orders by exact win ratio, then raw wins. Teams without a decided game
// rank as a zero ratio.
func ahead(a, b *tally) bool {
	if c := comparePct(a.wins, a.losses, b.wins, b.losses); c != 0 {
		return c > 0
	}
	return a.wins > b.wins
}

func level(a, b *tally) bool {
	return comparePct(a.wins, a.losses, b.wins, b.losses) == 0 && a.wins == b.wins
}

// comparePct compares aw/(aw+al) with bw/(bw+bl) without floating point.
func comparePct(aw, al, bw, bl int) int {
	ad, bd := aw+al, bw+bl
	lhs, rhs := 0, 0
	if ad > 0 && bd > 0 {
		lhs, rhs = aw*bd, bw*ad
	} else if ad > 0 {
		lhs = aw
	} else if bd > 0 {
		rhs = bw
	}
	switch {
	case lhs > rhs:
		return 1
	case lhs < rhs:
		return -1
	default:
		return 0
	}
}
