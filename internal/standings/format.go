package standings

import (
	"fmt"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
)

const forfeitSuffix = " (Forfeit)"

// FormatScoreDisplay renders a game's score for result tables.
//
// With no perspective the winner's score leads ("12-8"). With a perspective the
// named team's score leads regardless of result. W/L placeholder scores render
// as letters and ties as "h - a (Tie)". Forfeits always carry a suffix.
func FormatScoreDisplay(g games.GameRecord, perspective string) string {
	display := scoreBody(g, perspective)
	if g.Forfeit {
		display += forfeitSuffix
	}
	return display
}

func scoreBody(g games.GameRecord, perspective string) string {
	home, away := g.HomeScore, g.AwayScore

	if isOutcomePair(home, away) {
		switch {
		case perspective != "" && perspective == g.HomeTeam:
			return string(home.Outcome())
		case perspective != "" && perspective == g.AwayTeam:
			return string(away.Outcome())
		default:
			return fmt.Sprintf("%s - %s", home, away)
		}
	}

	decision := g.Decide()
	if decision == games.DecisionTie {
		return fmt.Sprintf("%d - %d (Tie)", home.Points(), away.Points())
	}

	if perspective != "" && g.Involves(perspective) {
		if perspective == g.HomeTeam {
			return fmt.Sprintf("%d-%d", home.Points(), away.Points())
		}
		return fmt.Sprintf("%d-%d", away.Points(), home.Points())
	}

	if decision == games.DecisionAway {
		return fmt.Sprintf("%d-%d", away.Points(), home.Points())
	}
	return fmt.Sprintf("%d-%d", home.Points(), away.Points())
}

func isOutcomePair(home, away games.Score) bool {
	h, a := home.Outcome(), away.Outcome()
	return (h == games.OutcomeWin && a == games.OutcomeLoss) ||
		(h == games.OutcomeLoss && a == games.OutcomeWin)
}

// ResultLetter reports the game from team's side: "W", "L", "T", or "" when the
// outcome is unresolved or team did not play.
func ResultLetter(g games.GameRecord, team string) string {
	var side games.Decision
	switch team {
	case g.HomeTeam:
		side = games.DecisionHome
	case g.AwayTeam:
		side = games.DecisionAway
	default:
		return ""
	}
	switch g.Decide() {
	case games.DecisionTie:
		return "T"
	case side:
		return "W"
	case games.DecisionUnresolved:
		return ""
	default:
		return "L"
	}
}
