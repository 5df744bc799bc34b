package postgres

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// EmbeddedMigrations returns the migration source compiled into the binary.
func EmbeddedMigrations() (source.Driver, error) {
	return iofs.New(migrationsFS, "migrations")
}

// Migrator applies schema migrations to an open pool. With an empty
// sourceURL the embedded migrations are used; otherwise sourceURL is a
// golang-migrate source such as "file://migrations".
type Migrator struct {
	db        *sql.DB
	sourceURL string
	logger    logging.Logger
}

func NewMigrator(db *sql.DB, sourceURL string, log logging.Logger) *Migrator {
	return &Migrator{db: db, sourceURL: sourceURL, logger: log}
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	driver, err := migratepg.WithInstance(m.db, &migratepg.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}
	if m.sourceURL != "" {
		return migrate.NewWithDatabaseInstance(m.sourceURL, "postgres", driver)
	}
	src, err := EmbeddedMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return migrate.NewWithInstance("iofs", src, "postgres", driver)
}

// Up applies every pending migration. No pending migrations is not an error.
func (m *Migrator) Up() error {
	mg, err := m.open()
	if err != nil {
		return err
	}
	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	version, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		m.logger.Warn("Failed to read migration version", logging.Err(err))
	}
	m.logger.Info("Database migrations completed",
		logging.Int("version", int(version)),
		logging.Bool("dirty", dirty),
	)
	return nil
}

//Personal.AI order the ending
