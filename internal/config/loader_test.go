package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 5s
catalog:
  path: "/etc/eattrue/substances.yaml"
history:
  backend: "redis"
  max_entries: 20
redis:
  addr: "redis:6379"
  key_prefix: "test:"
kafka:
  enabled: true
  brokers: ["kafka-1:9092", "kafka-2:9092"]
log:
  level: "debug"
  format: "console"
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile_ValidConfig(t *testing.T) {
	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/etc/eattrue/substances.yaml", cfg.Catalog.Path)
	assert.Equal(t, HistoryBackendRedis, cfg.History.Backend)
	assert.Equal(t, 20, cfg.History.MaxEntries)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "test:", cfg.Redis.KeyPrefix)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, DefaultKafkaTopic, cfg.Kafka.Topic)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultWriteTimeout, cfg.Server.WriteTimeout)
}

func TestLoad_FromFile_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoad_FromFile_InvalidYAML(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "invalid_yaml: ["))
	assert.ErrorIs(t, err, ErrConfigParseError)
}

func TestLoad_FromFile_ValidationFailure(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "history:\n  backend: cassandra\n"))
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("EATTRUE_SERVER_PORT", "7070")
	t.Setenv("EATTRUE_REDIS_ADDR", "cache:6380")

	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EATTRUE_HISTORY_BACKEND", "postgres")
	t.Setenv("EATTRUE_DATABASE_USER", "eattrue")
	t.Setenv("EATTRUE_DATABASE_HOST", "pg")
	t.Setenv("EATTRUE_LOG_LEVEL", "warn")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, HistoryBackendPostgres, cfg.History.Backend)
	assert.Equal(t, "eattrue", cfg.Database.User)
	assert.Equal(t, "pg", cfg.Database.Host)
	assert.Equal(t, DefaultDBPort, cfg.Database.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadOrDefault_EmptyPathUsesEnv(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
}

//Personal.AI order the ending
