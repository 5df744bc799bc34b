// Package config defines the EatTrue configuration structures. No I/O or
// parsing lives in this file, only plain data types and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
)

// History backends.
const (
	HistoryBackendMemory   = "memory"
	HistoryBackendRedis    = "redis"
	HistoryBackendPostgres = "postgres"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	// RateLimitRPS is the per-user sustained request rate. Zero disables
	// rate limiting.
	RateLimitRPS   float64  `mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
}

// Address returns host:port.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig points at the substance knowledge base. An empty Path selects
// the catalog compiled into the binary; an s3://bucket/key Path is fetched
// from ObjectStore.
type CatalogConfig struct {
	Path        string            `mapstructure:"path"`
	ObjectStore ObjectStoreConfig `mapstructure:"object_store"`
}

// ObjectStoreConfig locates an S3-compatible endpoint such as MinIO.
type ObjectStoreConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	Region          string        `mapstructure:"region"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// HistoryConfig selects where per-user profiles and scan history live.
type HistoryConfig struct {
	Backend    string `mapstructure:"backend"` // memory | redis | postgres
	MaxEntries int    `mapstructure:"max_entries"`
}

// Database drivers registered with database/sql.
const (
	DatabaseDriverPQ  = "postgres"
	DatabaseDriverPGX = "pgx"
)

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres | pgx
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	// MigrationPath overrides the embedded migrations, e.g. "file://migrations".
	MigrationPath string `mapstructure:"migration_path"`
	AutoMigrate   bool   `mapstructure:"auto_migrate"`
}

// DSN renders the lib/pq URL form of the connection parameters.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	// HistoryTTL expires idle users' history. Zero keeps it forever.
	HistoryTTL time.Duration `mapstructure:"history_ttl"`
}

// KafkaConfig holds scan-event producer parameters.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	Acks         string        `mapstructure:"acks"` // none | leader | all
	Async        bool          `mapstructure:"async"`
	// ConsumerGroup is the group id of the scan-event worker.
	ConsumerGroup string `mapstructure:"consumer_group"`
	MaxRetries    int    `mapstructure:"max_retries"`
	SASLMechanism string `mapstructure:"sasl_mechanism"` // "" | PLAIN | SCRAM-SHA-256 | SCRAM-SHA-512
	SASLUsername  string `mapstructure:"sasl_username"`
	SASLPassword  string `mapstructure:"sasl_password"`
}

// MetricsConfig controls the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig      `mapstructure:"server"`
	Catalog  CatalogConfig     `mapstructure:"catalog"`
	History  HistoryConfig     `mapstructure:"history"`
	Database DatabaseConfig    `mapstructure:"database"`
	Redis    RedisConfig       `mapstructure:"redis"`
	Kafka    KafkaConfig       `mapstructure:"kafka"`
	Metrics  MetricsConfig     `mapstructure:"metrics"`
	Log      logging.LogConfig `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of a fully-populated Config and
// returns the first problem found. Backend-specific sections are only
// checked when that backend is selected.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}

	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("config: server.rate_limit_rps must be ≥ 0, got %g", c.Server.RateLimitRPS)
	}

	if strings.HasPrefix(strings.ToLower(c.Catalog.Path), "s3://") && c.Catalog.ObjectStore.Endpoint == "" {
		return fmt.Errorf("config: catalog.object_store.endpoint is required for catalog path %q", c.Catalog.Path)
	}

	if c.History.MaxEntries < 0 || (c.History.MaxEntries > 0 && c.History.MaxEntries < MinHistoryMaxEntries) {
		return fmt.Errorf("config: history.max_entries must be 0 or ≥ %d, got %d",
			MinHistoryMaxEntries, c.History.MaxEntries)
	}
	switch c.History.Backend {
	case HistoryBackendMemory:
	case HistoryBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: redis.addr is required for the redis history backend")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
		}
	case HistoryBackendPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("config: database.host is required for the postgres history backend")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("config: database.port %d is out of range [1, 65535]", c.Database.Port)
		}
		if c.Database.User == "" {
			return fmt.Errorf("config: database.user is required for the postgres history backend")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("config: database.db_name is required for the postgres history backend")
		}
		switch c.Database.Driver {
		case DatabaseDriverPQ, DatabaseDriverPGX:
		default:
			return fmt.Errorf("config: database.driver %q is invalid; expected postgres|pgx", c.Database.Driver)
		}
	default:
		return fmt.Errorf("config: history.backend %q is invalid; expected memory|redis|postgres", c.History.Backend)
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("config: kafka.topic is required")
		}
		switch c.Kafka.Acks {
		case "none", "leader", "all":
		default:
			return fmt.Errorf("config: kafka.acks %q is invalid; expected none|leader|all", c.Kafka.Acks)
		}
		if c.Kafka.SASLMechanism != "" && c.Kafka.SASLUsername == "" {
			return fmt.Errorf("config: kafka.sasl_username is required when kafka.sasl_mechanism is set")
		}
	}

	switch c.Log.Level {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

//Personal.AI order the ending
