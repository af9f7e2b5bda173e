package server

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"reflect"
	"strings"

	"github.com/preston-bernstein/league-standings-service/internal/config"
	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/logging"
	"github.com/preston-bernstein/league-standings-service/internal/providers"
	"github.com/preston-bernstein/league-standings-service/internal/providers/file"
	"github.com/preston-bernstein/league-standings-service/internal/providers/fixture"
	"github.com/preston-bernstein/league-standings-service/internal/providers/mongodb"
	"github.com/preston-bernstein/league-standings-service/internal/providers/postgres"
)

var (
	openPostgres = func(ctx context.Context, dsn string) (providers.GameProvider, error) {
		return postgres.Open(ctx, dsn)
	}
	connectMongo = func(ctx context.Context, cfg config.MongoConfig) (providers.GameProvider, error) {
		return mongodb.Connect(ctx, cfg.URI, cfg.Database, cfg.Collection)
	}
)

func selectProvider(ctx context.Context, cfg config.Config, logger *slog.Logger) providers.GameProvider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "file":
		return file.New(cfg.Source.FilePath)
	case "postgres":
		p, err := openPostgres(ctx, cfg.Source.DatabaseURL)
		if err != nil {
			return unavailable(logger, cfg.Provider, err)
		}
		return p
	case "mongodb", "mongo":
		p, err := connectMongo(ctx, cfg.Source.Mongo)
		if err != nil {
			return unavailable(logger, cfg.Provider, err)
		}
		return p
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", logging.FieldProvider, cfg.Provider)
		return fixture.New()
	}
}

// unavailableProvider stands in for a store that could not be reached at
// boot. Snapshots keep serving while every poll reports the failure.
type unavailableProvider struct {
	err error
}

func (p unavailableProvider) FetchGames(ctx context.Context) ([]games.GameRecord, error) {
	return nil, p.err
}

func unavailable(logger *slog.Logger, name string, err error) providers.GameProvider {
	logging.Error(logger, "provider connection failed", err, slog.String(logging.FieldProvider, name))
	return unavailableProvider{err: fmt.Errorf("%w: %v", providers.ErrProviderUnavailable, err)}
}

// providerLabel names a provider in metrics and logs. A configured name wins
// with aliases collapsed; otherwise the concrete type's package name is used.
func providerLabel(configured string, provider providers.GameProvider) string {
	switch name := strings.ToLower(strings.TrimSpace(configured)); name {
	case "":
	case "mongo":
		return "mongodb"
	default:
		return name
	}
	if provider == nil {
		return "provider"
	}
	t := reflect.TypeOf(provider)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if pkg := path.Base(t.PkgPath()); pkg != "." && pkg != "/" {
		return pkg
	}
	return strings.ToLower(t.Name())
}
