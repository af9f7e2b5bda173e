package games

import "strings"

// Scope narrows the game log before it reaches the standings engine.
// Zero fields match everything.
type Scope struct {
	Year     int      `json:"year,omitempty"`
	Season   string   `json:"season,omitempty"`
	GameType GameType `json:"gameType,omitempty"`
	Team     string   `json:"team,omitempty"`
}

// Matches reports whether the game falls inside the scope.
func (s Scope) Matches(g GameRecord) bool {
	if s.Year != 0 && g.Year != s.Year {
		return false
	}
	if s.Season != "" && !strings.EqualFold(g.Season, s.Season) {
		return false
	}
	if s.GameType != "" && !strings.EqualFold(string(g.GameType), string(s.GameType)) {
		return false
	}
	if s.Team != "" && !g.Involves(s.Team) {
		return false
	}
	return true
}

// Filter returns the games inside the scope, preserving order.
func Filter(all []GameRecord, scope Scope) []GameRecord {
	out := make([]GameRecord, 0, len(all))
	for _, g := range all {
		if scope.Matches(g) {
			out = append(out, g)
		}
	}
	return out
}
