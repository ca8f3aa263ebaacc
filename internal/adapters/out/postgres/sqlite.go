package postgres

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InMemorySQLite is the DSN of a private SQLite database that lives as long as
// its single connection.
const InMemorySQLite = ":memory:"

// OpenSQLite opens an embedded SQLite database through GORM and migrates it, so
// the service and its tests can run the same repositories without a Postgres
// server. The pool is pinned to one connection: an in-memory database is owned
// by its connection, and SQLite allows only one writer anyway.
//
// Example:
//
//	db, err := postgres.OpenSQLite(postgres.InMemorySQLite, logger.Discard)
//	if err != nil {
//		return err
//	}
//	factory := postgres.NewGormUnitOfWorkFactory(db, nil)
func OpenSQLite(dsn string, gormLogger logger.Interface) (*gorm.DB, error) {
	if gormLogger == nil {
		gormLogger = logger.Discard
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err = Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}
