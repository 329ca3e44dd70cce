package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"wiki-quiz/internal/config"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	mysqlmigrate "github.com/golang-migrate/migrate/v4/database/mysql"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations of one dialect.
type Migrator interface {
	Up() error
	// Down rolls back steps migrations; steps below 1 means one.
	Down(steps int) error
	// Version reports 0, false, nil when nothing has been applied.
	Version() (version uint, dirty bool, err error)
	Close() error
}

// NewMigrator opens a dedicated connection for cfg and returns the migrator
// for its dialect. Close releases the connection.
func NewMigrator(cfg config.DBConfig) (Migrator, error) {
	dsn, err := DataSourceName(cfg)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	var driver migratedb.Driver
	switch cfg.Driver {
	case config.DriverPostgres:
		driver, err = pgmigrate.WithInstance(db, &pgmigrate.Config{})
	case config.DriverMySQL:
		driver, err = mysqlmigrate.WithInstance(db, &mysqlmigrate.Config{})
	case config.DriverOracle:
		return newOracleMigrator(db), nil
	default:
		_ = db.Close()
		return nil, fmt.Errorf("unsupported db driver: %s", cfg.Driver)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create %s migration driver: %w", cfg.Driver, err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+cfg.Driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, cfg.Driver, driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return &golangMigrator{m: m}, nil
}

type golangMigrator struct {
	m *migrate.Migrate
}

func (g *golangMigrator) Up() error {
	if err := g.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (g *golangMigrator) Down(steps int) error {
	if steps < 1 {
		steps = 1
	}
	if err := g.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback migrations: %w", err)
	}
	return nil
}

func (g *golangMigrator) Version() (uint, bool, error) {
	version, dirty, err := g.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get migration version: %w", err)
	}
	return version, dirty, nil
}

func (g *golangMigrator) Close() error {
	srcErr, dbErr := g.m.Close()
	return errors.Join(srcErr, dbErr)
}

// RunMigrations applies every pending migration for cfg.
func RunMigrations(cfg config.DBConfig, log *zap.Logger) error {
	m, err := NewMigrator(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil {
			log.Warn("Failed to close migrator", zap.Error(closeErr))
		}
	}()

	if err := m.Up(); err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	log.Info("Migrations applied",
		zap.String("driver", cfg.Driver),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}
