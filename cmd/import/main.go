// Command import loads a JSON game export into the postgres or mongodb store
// that the service polls.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/league-standings-service/internal/config"
	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/logging"
	"github.com/preston-bernstein/league-standings-service/internal/providers/file"
	"github.com/preston-bernstein/league-standings-service/internal/providers/mongodb"
	"github.com/preston-bernstein/league-standings-service/internal/providers/postgres"
)

const appVersion = "dev"

// gameStore is a database an export can be upserted into.
type gameStore interface {
	Save(ctx context.Context, log []games.GameRecord) error
	Close(ctx context.Context) error
}

var openStore = func(ctx context.Context, target string, src config.SourceConfig) (gameStore, error) {
	switch target {
	case "postgres":
		p, err := postgres.Open(ctx, src.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "mongodb", "mongo":
		p, err := mongodb.Connect(ctx, src.Mongo.URI, src.Mongo.Database, src.Mongo.Collection)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("import target %q: want postgres or mongodb", target)
	}
}

func main() {
	if os.Getenv("SKIP_IMPORT_RUN") == "1" {
		return
	}

	envErr := config.LoadEnvFile(os.Getenv("ENV_FILE"))

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "league-standings-import",
		Version: appVersion,
	})
	if envErr != nil {
		logging.Warn(logger, "env file not loaded", logging.FieldError, envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], cfg, logger)
	stop()
	if err != nil {
		logging.Error(logger, "import failed", err)
		os.Exit(1)
	}
}

// run reads the export named by -file and upserts every game into -target.
// Both default to the service configuration.
func run(ctx context.Context, args []string, cfg config.Config, logger *slog.Logger) error {
	flags := flag.NewFlagSet("import", flag.ContinueOnError)
	path := flags.String("file", cfg.Source.FilePath, "JSON game export to load")
	target := flags.String("target", cfg.Provider, "store to fill: postgres or mongodb")
	if err := flags.Parse(args); err != nil {
		return err
	}

	log, err := file.New(*path).FetchGames(ctx)
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}

	store, err := openStore(ctx, *target, cfg.Source)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(ctx); err != nil {
			logging.Warn(logger, "closing import store failed", logging.FieldError, err)
		}
	}()

	if err := store.Save(ctx, log); err != nil {
		return fmt.Errorf("save games: %w", err)
	}
	logging.Info(logger, "imported games",
		logging.FieldProvider, *target,
		logging.FieldPath, *path,
		logging.FieldCount, len(log),
	)
	return nil
}
