package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvFileDoesNotOverrideExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("STANDINGS_TIEBREAK=encounter\nLEAGUE_TEST_ONLY=from-file\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("STANDINGS_TIEBREAK", "head-to-head")
	t.Setenv("LEAGUE_TEST_ONLY", "")
	os.Unsetenv("LEAGUE_TEST_ONLY")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("STANDINGS_TIEBREAK"); got != "head-to-head" {
		t.Fatalf("expected existing value kept, got %q", got)
	}
	if got := os.Getenv("LEAGUE_TEST_ONLY"); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
}

func TestLoadEnvFileMissingExplicitPath(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for missing explicit env file")
	}
}

func TestLoadEnvFileMissingDefaultIsIgnored(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := LoadEnvFile(""); err != nil {
		t.Fatalf("expected missing default .env to be ignored, got %v", err)
	}
}
