package database

import (
	"fmt"

	"mcq-checker/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

// Driver names as registered with database/sql.
const (
	DriverOracle = "oracle"
	DriverSQLite = "sqlite"
)

func init() {
	// go-ora takes :name placeholders; sqlx knows neither driver by default.
	sqlx.BindDriver(DriverOracle, sqlx.NAMED)
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Connect opens and pings a connection pool for one of the supported drivers.
func Connect(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverOracle, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// one writer at a time; also keeps :memory: databases on a single connection
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	logger.Get().Info("Successfully connected to database", zap.String("driver", driver))
	return db, nil
}
