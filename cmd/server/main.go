package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/cfb-data-service/internal/config"
	"github.com/preston-bernstein/cfb-data-service/internal/logging"
	"github.com/preston-bernstein/cfb-data-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "cfb-data-service",
		Version: appVersion,
	})
	if err := cfg.Validate(); err != nil {
		logging.Error(logger, "invalid configuration", err)
		os.Exit(1)
	}
	if !cfg.CFBD.Enabled() {
		logger.Warn("CFBD_API_KEY not set, upstream calls will return empty results")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}
