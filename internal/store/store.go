//go:generate go tool sqlc generate -f .sqlc.yaml

// Package store persists recorded snapshots in a local sqlite database.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
)

// MigrationAction is the type of migration to perform.
type MigrationAction int

const (
	// MigrateUp Fully upgrades the schema.
	MigrateUp MigrationAction = iota
	// MigrateDn Fully downgrades the schema.
	MigrateDn
	// MigrateUpOne Upgrade the schema by one revision.
	MigrateUpOne
	// MigrateDownOne Downgrade the schema by one revision.
	MigrateDownOne
)

const memoryPath = ":memory:"

var (
	//go:embed migrations
	migrations embed.FS

	ErrDBConnect = errors.New("db connect error")
	ErrMigrate   = errors.New("failed to migrate db schema")

	// Applied by the driver to every pooled connection.
	connectionPragmas = []string{ //nolint:gochecknoglobals
		"foreign_keys(1)",
		"busy_timeout(10000)",
		"synchronous(NORMAL)",
		"cache_size(-32768)",
	}
)

// dataSource builds the driver DSN. File databases use WAL so the recorder can write while an
// export reads.
func dataSource(path string, memory bool) string {
	params := url.Values{}
	for _, pragma := range connectionPragmas {
		params.Add("_pragma", pragma)
	}

	if !memory {
		params.Add("_pragma", "journal_mode(WAL)")
	}

	return path + "?" + params.Encode()
}

// sizePool bounds the pool. Every connection to :memory: gets its own empty database, so an
// in-memory store is pinned to one connection.
func sizePool(connection *sql.DB, memory bool) {
	size := 1
	if !memory {
		size = min(4, max(2, runtime.GOMAXPROCS(0)))
	}

	connection.SetMaxOpenConns(size)
	connection.SetMaxIdleConns(size)
	connection.SetConnMaxLifetime(0)
	connection.SetConnMaxIdleTime(0)
}

// Open connects to the database at path, or a private in-memory database when path is empty.
func Open(ctx context.Context, path string, autoMigrate bool) (*sql.DB, error) {
	memory := path == "" || path == memoryPath
	if memory {
		path = memoryPath
	}

	connection, err := sql.Open("sqlite", dataSource(path, memory))
	if err != nil {
		return nil, errors.Join(err, ErrDBConnect)
	}

	sizePool(connection, memory)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if errPing := connection.PingContext(pingCtx); errPing != nil {
		return nil, errors.Join(errPing, connection.Close(), ErrDBConnect)
	}

	if autoMigrate {
		if errMigrate := Migrate(connection, MigrateUp); errMigrate != nil {
			return nil, errors.Join(errMigrate, connection.Close(), ErrDBConnect)
		}
	}

	return connection, nil
}

func newMigrator(conn *sql.DB) (*migrate.Migrate, error) {
	driver, errDriver := sqlite.WithInstance(conn, &sqlite.Config{})
	if errDriver != nil {
		return nil, errDriver
	}

	source, errSource := httpfs.New(http.FS(migrations), "migrations")
	if errSource != nil {
		return nil, errSource
	}

	return migrate.NewWithInstance("httpfs", source, "sqlite", driver)
}

// Migrate applies action to the schema. Being already at the target version is not an error.
func Migrate(conn *sql.DB, action MigrationAction) error {
	migrator, errMigrator := newMigrator(conn)
	if errMigrator != nil {
		return errors.Join(errMigrator, ErrMigrate)
	}

	var run func() error

	switch action {
	case MigrateUp:
		run = migrator.Up
	case MigrateDn:
		run = migrator.Down
	case MigrateUpOne:
		run = func() error { return migrator.Steps(1) }
	case MigrateDownOne:
		run = func() error { return migrator.Steps(-1) }
	default:
		return fmt.Errorf("%w: unknown action %d", ErrMigrate, action)
	}

	if err := run(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Join(err, ErrMigrate)
	}

	return nil
}
