package games

import (
	"encoding/json"
	"strings"
)

const (
	// TieToken marks a drawn game in the winner field.
	TieToken = "Tie"

	forfeitPrefix = "Forfeit - "
)

// Winner is the parsed form of the raw winner field.
type Winner struct {
	Raw     string
	Forfeit bool
	// Token is Raw with any forfeit prefix stripped: a team name or TieToken.
	Token string
}

// ParseWinner splits a raw winner value into its forfeit flag and token.
func ParseWinner(raw string) Winner {
	if strings.HasPrefix(raw, forfeitPrefix) {
		return Winner{Raw: raw, Forfeit: true, Token: strings.TrimPrefix(raw, forfeitPrefix)}
	}
	return Winner{Raw: raw, Token: raw}
}

// WinnerOf is a convenience for building records in code.
func WinnerOf(team string) Winner {
	return ParseWinner(team)
}

// ForfeitTo builds a forfeit winner awarded to team (or TieToken).
func ForfeitTo(team string) Winner {
	return ParseWinner(forfeitPrefix + team)
}

func (w Winner) String() string {
	return w.Raw
}

func (w Winner) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Raw)
}

// UnmarshalJSON reads a string winner. Null and non-string values leave the
// game unresolved.
func (w *Winner) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*w = Winner{}
		return nil
	}
	*w = ParseWinner(raw)
	return nil
}

// Decision is how a game's winner resolves against its participants.
type Decision int

const (
	DecisionUnresolved Decision = iota
	DecisionTie
	DecisionHome
	DecisionAway
)

func (d Decision) String() string {
	switch d {
	case DecisionTie:
		return "tie"
	case DecisionHome:
		return "home"
	case DecisionAway:
		return "away"
	default:
		return "unresolved"
	}
}
