package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/league-standings-service/internal/config"
	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/testutil"
)

type memoryStore struct {
	saved   []games.GameRecord
	saveErr error
	closed  bool
}

func (m *memoryStore) Save(_ context.Context, log []games.GameRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, log...)
	return nil
}

func (m *memoryStore) Close(context.Context) error {
	m.closed = true
	return nil
}

func useStore(t *testing.T, store gameStore, openErr error) *string {
	t.Helper()
	var opened string
	orig := openStore
	openStore = func(_ context.Context, target string, _ config.SourceConfig) (gameStore, error) {
		opened = target
		if openErr != nil {
			return nil, openErr
		}
		return store, nil
	}
	t.Cleanup(func() { openStore = orig })
	return &opened
}

func writeExport(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_IMPORT_RUN", "1")
	main()
}

func TestRunSavesEveryGameFromExport(t *testing.T) {
	path := writeExport(t, `[
  {"homeTeam":"Blue","awayTeam":"Orange","homeScore":5,"awayScore":3,"winner":"Blue","gameType":"Regular"},
  {"id":"r2","homeTeam":"Red","awayTeam":"Black","homeScore":"W","awayScore":"-","winner":"Forfeit - Red","forfeit":true}
]`)
	store := &memoryStore{}
	opened := useStore(t, store, nil)
	logger, buf := testutil.NewBufferLogger()

	err := run(context.Background(), []string{"-file", path, "-target", "postgres"}, config.Config{}, logger)
	require.NoError(t, err)

	assert.Equal(t, "postgres", *opened)
	require.Len(t, store.saved, 2)
	assert.Equal(t, "game-1", store.saved[0].ID)
	assert.Equal(t, games.Numeric(0), store.saved[1].AwayScore)
	assert.True(t, store.closed)
	assert.True(t, buf.Contains("imported games"))
}

func TestRunDefaultsToConfiguredSource(t *testing.T) {
	path := writeExport(t, `{"a":{"homeTeam":"Gold","awayTeam":"Silver","homeScore":2,"awayScore":2,"winner":"Tie"}}`)
	store := &memoryStore{}
	opened := useStore(t, store, nil)

	cfg := config.Config{Provider: "mongodb", Source: config.SourceConfig{FilePath: path}}
	require.NoError(t, run(context.Background(), nil, cfg, nil))

	assert.Equal(t, "mongodb", *opened)
	require.Len(t, store.saved, 1)
	assert.Equal(t, "a", store.saved[0].ID)
}

func TestRunFailures(t *testing.T) {
	good := writeExport(t, `[]`)
	cases := []struct {
		name    string
		args    []string
		store   *memoryStore
		openErr error
		want    string
	}{
		{name: "missing export", args: []string{"-file", filepath.Join(t.TempDir(), "none.json")}, store: &memoryStore{}, want: "read export"},
		{name: "open fails", args: []string{"-file", good}, store: &memoryStore{}, openErr: errors.New("refused"), want: "refused"},
		{name: "save fails", args: []string{"-file", good}, store: &memoryStore{saveErr: errors.New("disk full")}, want: "save games"},
		{name: "bad flag", args: []string{"-nope"}, store: &memoryStore{}, want: "flag provided but not defined"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			useStore(t, tc.store, tc.openErr)
			err := run(context.Background(), tc.args, config.Config{Provider: "postgres"}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestOpenStoreRejectsUnknownTarget(t *testing.T) {
	_, err := openStore(context.Background(), "fixture", config.SourceConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want postgres or mongodb")
}

func TestOpenStoreNeedsConnectionSettings(t *testing.T) {
	for _, target := range []string{"postgres", "mongodb"} {
		_, err := openStore(context.Background(), target, config.SourceConfig{})
		assert.Error(t, err, target)
	}
}
