package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{" TRUE ", true},
		{"1", true},
		{"on", true},
		{"false", false},
		{"0", false},
		{"off", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %q, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestChoiceEnvOrDefault(t *testing.T) {
	cases := map[string]string{
		"":          "fixture",
		"Postgres":  "postgres",
		" mongodb ": "mongodb",
		"sqlite":    "fixture",
	}
	for raw, want := range cases {
		t.Setenv("CHOICE_TEST", raw)
		if got := choiceEnvOrDefault("CHOICE_TEST", "fixture", "fixture", "postgres", "mongodb"); got != want {
			t.Fatalf("raw %q: expected %q, got %q", raw, want, got)
		}
	}
}

func TestDurationEnvOrDefault(t *testing.T) {
	cases := map[string]time.Duration{
		"":      time.Minute,
		"30s":   30 * time.Second,
		"-5s":   time.Minute,
		"often": time.Minute,
	}
	for raw, want := range cases {
		t.Setenv("DURATION_TEST", raw)
		if got := durationEnvOrDefault("DURATION_TEST", time.Minute); got != want {
			t.Fatalf("raw %q: expected %s, got %s", raw, want, got)
		}
	}
}
