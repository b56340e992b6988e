package db

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/samber/oops"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrator applies the embedded schema for one dialect.
//
// The golang-migrate instance is never closed: closing it would also close
// the *sql.DB it was built on, which the rest of the service keeps using.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator builds a Migrator on top of an already opened db.
func NewMigrator(db *sql.DB, driver string) (*Migrator, error) {
	var (
		dbDriver database.Driver
		dir      string
		err      error
	)
	switch driver {
	case DriverSQLite:
		dir = "migrations/sqlite"
		dbDriver, err = sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	case DriverPostgres:
		dir = "migrations/postgres"
		dbDriver, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	default:
		return nil, oops.Code("MIGRATION_INIT_FAILED").With("driver", driver).Errorf("unsupported db driver")
	}
	if err != nil {
		return nil, oops.Code("MIGRATION_INIT_FAILED").With("driver", driver).Wrap(err)
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, oops.Code("MIGRATION_SOURCE_FAILED").With("dir", dir).Wrap(err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, dbDriver)
	if err != nil {
		return nil, oops.Code("MIGRATION_INIT_FAILED").With("driver", driver).Wrap(err)
	}
	return &Migrator{m: m}, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return oops.Code("MIGRATION_UP_FAILED").Wrap(err)
	}
	return nil
}

// Down rolls back every migration, dropping the users table.
func (m *Migrator) Down() error {
	if err := m.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return oops.Code("MIGRATION_DOWN_FAILED").Wrap(err)
	}
	return nil
}

// Version returns the current schema version; 0 when nothing is applied.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, oops.Code("MIGRATION_VERSION_FAILED").Wrap(err)
	}
	return version, dirty, nil
}

// Open opens the database and brings its schema up to date.
func Open(driver, dsn string) (*sql.DB, error) {
	conn, err := InitDB(driver, dsn)
	if err != nil {
		return nil, err
	}
	mig, err := NewMigrator(conn, driver)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := mig.Up(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}
