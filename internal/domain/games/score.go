package games

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Outcome is the single-letter result recorded when the real tally is unknown.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeLoss Outcome = "L"
)

// Score is either a numeric tally or a W/L sentinel. The zero value is Numeric(0).
type Score struct {
	points  int
	outcome Outcome
}

// Numeric builds a tallied score. Negative values clamp to zero.
func Numeric(points int) Score {
	if points < 0 {
		points = 0
	}
	return Score{points: points}
}

// Sentinel builds a W/L placeholder score.
func Sentinel(o Outcome) Score {
	return Score{outcome: o}
}

// IsSentinel reports whether the score carries only a W/L outcome.
func (s Score) IsSentinel() bool {
	return s.outcome != ""
}

// Outcome returns the sentinel letter, or "" for numeric scores.
func (s Score) Outcome() Outcome {
	return s.outcome
}

// Points returns the numeric tally. Sentinels count as zero.
func (s Score) Points() int {
	if s.IsSentinel() {
		return 0
	}
	return s.points
}

func (s Score) String() string {
	if s.IsSentinel() {
		return string(s.outcome)
	}
	return strconv.Itoa(s.points)
}

// ParseScore reads a score from its textual form. Empty input is Numeric(0).
func ParseScore(raw string) (Score, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToUpper(raw) {
	case "":
		return Numeric(0), nil
	case string(OutcomeWin):
		return Sentinel(OutcomeWin), nil
	case string(OutcomeLoss):
		return Sentinel(OutcomeLoss), nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return Numeric(n), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Numeric(0), fmt.Errorf("invalid score %q", raw)
	}
	return Numeric(int(f)), nil
}

// ScoreFromValue converts a loosely typed value (as decoded from JSON or BSON)
// into a Score. Unknown shapes degrade to Numeric(0).
func ScoreFromValue(v any) Score {
	switch val := v.(type) {
	case nil:
		return Numeric(0)
	case Score:
		return val
	case int:
		return Numeric(val)
	case int32:
		return Numeric(int(val))
	case int64:
		return Numeric(int(val))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return Numeric(0)
		}
		return Numeric(int(val))
	case string:
		s, err := ParseScore(val)
		if err != nil {
			return Numeric(0)
		}
		return s
	default:
		return Numeric(0)
	}
}

// MarshalJSON writes sentinels as strings and tallies as numbers.
func (s Score) MarshalJSON() ([]byte, error) {
	if s.IsSentinel() {
		return json.Marshal(string(s.outcome))
	}
	return json.Marshal(s.points)
}

// UnmarshalJSON accepts numbers, numeric strings, "W"/"L" and null. Any other
// value decodes as Numeric(0) without an error.
func (s *Score) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*s = Numeric(0)
		return nil
	}
	*s = ScoreFromValue(v)
	return nil
}
