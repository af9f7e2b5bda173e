package testutil

import (
	"context"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/providers"
)

// GoodProvider serves a fixed game log.
type GoodProvider struct {
	Games []games.GameRecord
}

func (p GoodProvider) FetchGames(context.Context) ([]games.GameRecord, error) {
	return p.Games, nil
}

// ErrProvider fails every fetch with Err, or with ErrProviderUnavailable when
// Err is nil.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchGames(context.Context) ([]games.GameRecord, error) {
	if p.Err == nil {
		return nil, providers.ErrProviderUnavailable
	}
	return nil, p.Err
}

// ClosingProvider is a GoodProvider that counts Close calls.
type ClosingProvider struct {
	GoodProvider
	Closed int
	Err    error
}

func (p *ClosingProvider) Close(context.Context) error {
	p.Closed++
	return p.Err
}
