package database

import (
	"context"
	"fmt"

	"wiki-quiz/internal/config"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"          // PostgreSQL driver
	_ "github.com/sijms/go-ora/v2" // Oracle driver, registered as "oracle"
)

func init() {
	// go-ora takes :name placeholders; sqlx does not know the driver name.
	sqlx.BindDriver(config.DriverOracle, sqlx.NAMED)
}

// DataSourceName returns the DSN to open cfg.Driver with. MySQL DSNs always
// get parseTime=true so DATETIME columns scan into time.Time.
func DataSourceName(cfg config.DBConfig) (string, error) {
	if cfg.Driver != config.DriverMySQL {
		return cfg.DSN, nil
	}
	mysqlCfg, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	mysqlCfg.ParseTime = true
	return mysqlCfg.FormatDSN(), nil
}

// Connect opens a pool for cfg.Driver, applies pool limits and pings once.
// The caller owns Close.
func Connect(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	dsn, err := DataSourceName(cfg)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.ConnectContext(ctx, cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}
