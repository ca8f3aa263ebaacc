package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"orders/internal/adapters/out/eventlog"
	"orders/internal/adapters/out/natsstan"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/redis/ordercache"
	"orders/internal/core/ports"

	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Closer releases a connection opened at start-up.
type Closer func() error

// OpenStorage returns the GORM unit of work factory. With a database host it
// connects to Postgres, plus the replica when one is configured, and migrates
// the primary. Without one it opens SQLite at cfg.SQLitePath, in memory by
// default. The closers release every connection that was opened, even when an
// error is returned.
func OpenStorage(cfg Config, log *slog.Logger) (ports.UnitOfWorkFactory, []Closer, error) {
	if !cfg.UsesPostgres() {
		log.Warn("DB_HOST is empty, orders are stored in SQLite", "path", cfg.SQLitePath)
		db, err := postgres.OpenSQLite(cfg.SQLitePath, logger.Default.LogMode(logger.Warn))
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return postgres.NewGormUnitOfWorkFactory(db, nil), []Closer{sqlCloser(db)}, nil
	}

	primary, err := openGorm(cfg.PostgresDSN(cfg.DBHost))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to primary database: %w", err)
	}
	closers := []Closer{sqlCloser(primary)}

	if err = postgres.Migrate(primary); err != nil {
		return nil, closers, fmt.Errorf("migrate schema: %w", err)
	}

	var replica *gorm.DB
	if cfg.DBReplicaHost != "" {
		replica, err = openGorm(cfg.PostgresDSN(cfg.DBReplicaHost))
		if err != nil {
			return nil, closers, fmt.Errorf("connect to replica database: %w", err)
		}
		closers = append(closers, sqlCloser(replica))
	}

	return postgres.NewGormUnitOfWorkFactory(primary, replica), closers, nil
}

// OpenCache returns nil without error when REDIS_URL is empty.
func OpenCache(ctx context.Context, cfg Config) (ports.OrderCache, Closer, error) {
	if cfg.RedisURL == "" {
		return nil, nil, nil
	}
	rdb, err := ordercache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return ordercache.New(rdb, cfg.OrderCacheTTL), rdb.Close, nil
}

// OpenPublisher connects to NATS Streaming when NATS_URL is set. Without it
// events are written to the log.
func OpenPublisher(cfg Config, log *slog.Logger) (ports.EventPublisher, Closer, error) {
	if cfg.NatsURL == "" {
		return eventlog.NewPublisher(log), nil, nil
	}
	conn, err := natsstan.Connect(cfg.StanClusterID, cfg.StanClientID, cfg.NatsURL)
	if err != nil {
		return nil, nil, err
	}
	publisher := natsstan.NewPublisher(conn, cfg.StanOrderEventsSubject)
	return publisher, publisher.Close, nil
}

// openGorm connects to Postgres and logs only slow or failed statements.
func openGorm(dsn string) (*gorm.DB, error) {
	return gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// sqlCloser closes the pool behind db.
func sqlCloser(db *gorm.DB) Closer {
	return func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}
