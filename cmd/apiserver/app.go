package main

import (
	"context"
	"net/http"

	"github.com/turtacn/EatTrue/internal/application/scanning"
	"github.com/turtacn/EatTrue/internal/bootstrap"
	"github.com/turtacn/EatTrue/internal/config"
	"github.com/turtacn/EatTrue/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/EatTrue/internal/interfaces/http"
	"github.com/turtacn/EatTrue/internal/interfaces/http/handlers"
	"github.com/turtacn/EatTrue/internal/interfaces/http/middleware"
)

// application holds every long-lived component of the API server.
type application struct {
	server  *httpserver.Server
	closers []func() error
	logger  logging.Logger
}

// newApplication wires configuration into a ready-to-start server. On error
// everything opened so far is closed.
func newApplication(ctx context.Context, cfg *config.Config, logger logging.Logger) (_ *application, err error) {
	app := &application{logger: logger}
	defer func() {
		if err != nil {
			app.Close()
		}
	}()

	resolver, err := bootstrap.OpenResolver(ctx, cfg.Catalog, logger)
	if err != nil {
		return nil, err
	}

	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, store.Close)
	checkers := []handlers.HealthChecker{&storeHealthAdapter{backend: cfg.History.Backend, store: store}}

	var (
		svcOpts        []scanning.Option
		routerCfg      httpserver.RouterConfig
		healthOpts     []handlers.HealthOption
		metricsHandler http.Handler
	)

	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			return nil, err
		}
		appMetrics := prometheus.NewAppMetrics(collector)
		store = bootstrap.InstrumentStore(store, cfg.History.Backend, appMetrics, nil)
		svcOpts = append(svcOpts, scanning.WithMetrics(appMetrics))
		healthOpts = append(healthOpts, handlers.WithHealthObserver(appMetrics))
		routerCfg.HTTPMetrics = appMetrics
		metricsHandler = collector.Handler()
	}

	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(bootstrap.ProducerConfig(cfg.Kafka), logger)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, producer.Close)

		topics, err := kafka.NewTopicManager(cfg.Kafka.Brokers, logger)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, topics.Close)
		if err := topics.EnsureTopics(ctx, kafka.DefaultTopics(cfg.Kafka.Topic, 1)); err != nil {
			logger.Warn("Failed to ensure Kafka topics", logging.Err(err))
		}

		checkers = append(checkers, &kafkaHealthAdapter{topics: topics, topic: cfg.Kafka.Topic})
		svcOpts = append(svcOpts, scanning.WithPublisher(
			kafka.NewScanEventPublisher(producer, cfg.Kafka.Topic, logger, kafka.WithSource("eattrue-apiserver"))))
	}

	svc := scanning.NewService(resolver, store, store, logger, svcOpts...)

	routerCfg.ScanHandler = handlers.NewScanHandler(svc, logger)
	routerCfg.UserHandler = handlers.NewUserHandler(svc)
	routerCfg.SubstanceHandler = handlers.NewSubstanceHandler(svc)
	routerCfg.HealthHandler = handlers.NewHealthHandler(Version, checkers, healthOpts...)
	routerCfg.Logger = logger
	routerCfg.MaxBodySize = cfg.Server.MaxBodySize
	routerCfg.MetricsHandler = metricsHandler
	routerCfg.MetricsPath = cfg.Metrics.Path

	if len(cfg.Server.CORSOrigins) > 0 {
		cors := middleware.DefaultCORSConfig()
		cors.AllowedOrigins = cfg.Server.CORSOrigins
		routerCfg.CORS = &cors
	}

	if cfg.Server.RateLimitRPS > 0 {
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.Server.RateLimitRPS
		rl.BurstSize = cfg.Server.RateLimitBurst
		rl.SkipPaths = append(rl.SkipPaths, cfg.Metrics.Path)
		limiter := middleware.NewTokenBucketLimiter(rl.RequestsPerSecond, rl.BurstSize, rl.CleanupInterval, nil)
		app.closers = append(app.closers, func() error { limiter.Stop(); return nil })
		routerCfg.RateLimiter = limiter
		routerCfg.RateLimit = rl
	}

	app.server = httpserver.NewServer(cfg.Server, httpserver.NewRouter(routerCfg), logger)
	return app, nil
}

// Close releases components in reverse order of creation.
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Failed to close component", logging.Err(err))
		}
	}
	a.closers = nil
}

//Personal.AI order the ending
