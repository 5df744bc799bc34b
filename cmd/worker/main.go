// Command worker consumes scan.completed events from Kafka and projects them
// into score metrics. Events that keep failing go to the dead-letter topic.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/EatTrue/internal/bootstrap"
	"github.com/turtacn/EatTrue/internal/config"
	"github.com/turtacn/EatTrue/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/EatTrue/internal/interfaces/http"
	"github.com/turtacn/EatTrue/internal/interfaces/http/handlers"
)

// Build-time variables injected via ldflags.
var Version = "dev"

const defaultHealthPort = 8081

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: EATTRUE_* environment only)")
	healthPort := flag.Int("health-port", defaultHealthPort, "port for /healthz, /readyz and metrics")
	flag.Parse()

	if err := run(*configPath, *healthPort); err != nil {
		fmt.Fprintf(os.Stderr, "worker: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, healthPort int) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if !cfg.Kafka.Enabled {
		return fmt.Errorf("kafka.enabled is false; the worker has nothing to consume")
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            cfg.Metrics.Namespace,
		Subsystem:            "worker",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		return err
	}
	metrics := prometheus.NewAppMetrics(collector)

	consumerCfg := bootstrap.ConsumerConfig(cfg.Kafka)
	consumer, err := kafka.NewConsumer(consumerCfg, logger)
	if err != nil {
		logger.Error("Failed to create Kafka consumer", logging.Err(err))
		return err
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.Warn("Failed to close Kafka consumer", logging.Err(err))
		}
	}()

	projector := newScanProjector(metrics, logger)
	consumer.Subscribe(cfg.Kafka.Topic, kafka.ScanCompletedHandler(projector.Handle))

	healthCfg := cfg.Server
	healthCfg.Port = healthPort
	health := handlers.NewHealthHandler(Version, nil, handlers.WithHealthObserver(metrics))
	server := httpserver.NewServer(healthCfg, httpserver.NewRouter(httpserver.RouterConfig{
		HealthHandler:  health,
		MetricsHandler: collector.Handler(),
		MetricsPath:    cfg.Metrics.Path,
	}), logger)

	logger.Info("Starting EatTrue worker",
		logging.String("version", Version),
		logging.Strings("brokers", cfg.Kafka.Brokers),
		logging.String("topic", cfg.Kafka.Topic),
		logging.String("group", consumerCfg.GroupID),
		logging.String("dead_letter_topic", consumerCfg.RetryConfig.DeadLetterTopic))

	if err := consumer.Start(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		return server.Stop(context.Background())
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", logging.Err(err))
		return err
	}

	m := consumer.GetMetrics()
	logger.Info("Worker stopped",
		logging.Int("processed", int(m.MessagesProcessed.Load())),
		logging.Int("failed", int(m.MessagesFailed.Load())),
		logging.Int("dead_lettered", int(m.MessagesDeadLettered.Load())))
	return nil
}

//Personal.AI order the ending
