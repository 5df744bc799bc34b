// Command apiserver serves the EatTrue scanning API over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/EatTrue/internal/config"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: EATTRUE_* environment only)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if configPath != "" {
		config.Watch(configPath, func(c *config.Config) {
			if logging.SetLevel(logger, c.Log.Level) {
				logger.Info("Log level updated", logging.String("level", c.Log.Level))
			}
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting EatTrue API server",
		logging.String("version", Version),
		logging.String("commit", GitCommit),
		logging.String("addr", cfg.Server.Address()),
		logging.String("history_backend", cfg.History.Backend),
		logging.Bool("kafka", cfg.Kafka.Enabled))

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize API server", logging.Err(err))
		return err
	}
	defer app.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(app.server.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down API server")
		return app.server.Stop(context.Background())
	})

	if err := g.Wait(); err != nil {
		logger.Error("API server stopped with error", logging.Err(err))
		return err
	}
	logger.Info("API server stopped")
	return nil
}

//Personal.AI order the ending
