package providers

import (
	"context"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
)

// GameProvider reads the full league game log in encounter order.
type GameProvider interface {
	FetchGames(ctx context.Context) ([]games.GameRecord, error)
}

// Closer is implemented by providers that hold connections.
type Closer interface {
	Close(ctx context.Context) error
}

// Close releases provider resources when the provider supports it.
func Close(ctx context.Context, p GameProvider) error {
	if c, ok := p.(Closer); ok {
		return c.Close(ctx)
	}
	return nil
}
