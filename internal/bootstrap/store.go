package bootstrap

import (
	"context"
	"fmt"

	"github.com/turtacn/EatTrue/internal/config"
	"github.com/turtacn/EatTrue/internal/domain/scan"
	"github.com/turtacn/EatTrue/internal/infrastructure/database/memory"
	"github.com/turtacn/EatTrue/internal/infrastructure/database/postgres"
	"github.com/turtacn/EatTrue/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/EatTrue/internal/infrastructure/database/redis"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
)

// OpenStore builds the history/profile store selected by history.backend.
// The postgres backend runs migrations first when database.auto_migrate is
// set.
func OpenStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (scan.Store, error) {
	switch cfg.History.Backend {
	case config.HistoryBackendMemory:
		logger.Info("Using in-memory history store", logging.Int("max_entries", cfg.History.MaxEntries))
		return memory.NewStore(cfg.History.MaxEntries), nil

	case config.HistoryBackendRedis:
		client, err := redis.NewClient(RedisClientConfig(cfg.Redis), logger)
		if err != nil {
			return nil, err
		}
		return redis.NewStore(client, logger,
			redis.WithKeyPrefix(cfg.Redis.KeyPrefix),
			redis.WithMaxEntries(cfg.History.MaxEntries),
			redis.WithHistoryTTL(cfg.Redis.HistoryTTL),
		), nil

	case config.HistoryBackendPostgres:
		conn, err := postgres.NewConnection(ctx, PostgresConfig(cfg.Database), logger)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := postgres.NewMigrator(conn.DB(), cfg.Database.MigrationPath, logger).Up(); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		return repositories.NewPostgresScanStore(conn, logger, cfg.History.MaxEntries), nil

	default:
		return nil, fmt.Errorf("unsupported history backend %q", cfg.History.Backend)
	}
}

// RedisClientConfig maps the redis section onto the client configuration.
func RedisClientConfig(c config.RedisConfig) *redis.RedisConfig {
	return &redis.RedisConfig{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}

// PostgresConfig maps the database section onto the connection configuration.
func PostgresConfig(d config.DatabaseConfig) postgres.PostgresConfig {
	return postgres.PostgresConfig{
		Driver:          d.Driver,
		Host:            d.Host,
		Port:            d.Port,
		Database:        d.DBName,
		Username:        d.User,
		Password:        d.Password,
		SSLMode:         d.SSLMode,
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: d.ConnMaxLifetime,
	}
}

//Personal.AI order the ending
