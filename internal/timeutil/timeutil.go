package timeutil

import (
	"errors"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// gameDateLayouts are the shapes league sheets have used for the date column.
var gameDateLayouts = []string{
	time.RFC3339,
	DateLayout,
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ErrUnparseableDate is returned when no known layout matches.
var ErrUnparseableDate = errors.New("unrecognized date")

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseGameDate accepts any of the date formats seen in game logs.
func ParseGameDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrUnparseableDate
	}
	for _, layout := range gameDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrUnparseableDate
}

// NewerFirst orders two free-form dates, newest first. Unparseable dates sort
// after parseable ones and fall back to a string comparison between themselves.
func NewerFirst(a, b string) bool {
	ta, errA := ParseGameDate(a)
	tb, errB := ParseGameDate(b)
	switch {
	case errA == nil && errB == nil:
		return ta.After(tb)
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a > b
	}
}
