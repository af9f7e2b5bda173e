package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/league-standings-service/internal/config"
	"github.com/preston-bernstein/league-standings-service/internal/logging"
	"github.com/preston-bernstein/league-standings-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	envErr := config.LoadEnvFile(os.Getenv("ENV_FILE"))

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "league-standings-service",
		Version: appVersion,
	})
	if envErr != nil {
		logging.Warn(logger, "env file not loaded", logging.FieldError, envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}
