package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/redis/ordercache"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/jobs"
	"orders/internal/pkg/errs"
)

const (
	defaultHTTPPort         = "8080"
	defaultOutboxBatchSize  = 100
	defaultStanClientID     = "orders-service"
	defaultOrderEventsTopic = "orders.status-changed"
)

// Config is the process configuration read from the environment. Empty
// connection settings switch the matching dependency to its embedded fallback:
// SQLite for storage, no cache, and the log for events.
type Config struct {
	HTTPPort string
	LogLevel string

	// SQLitePath is used only when DBHost is empty.
	SQLitePath string

	DBHost        string
	DBReplicaHost string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string

	RedisURL      string
	OrderCacheTTL time.Duration

	NatsURL                string
	StanClusterID          string
	StanClientID           string
	StanOrderEventsSubject string

	OutboxBatchSize     int
	OutboxRelaySchedule string

	OTLPEndpoint string
	TraceStdout  bool
}

// LoadConfig reads every key through getenv and applies defaults. All
// malformed values are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:               orDefault(getenv("HTTP_PORT"), defaultHTTPPort),
		LogLevel:               getenv("LOG_LEVEL"),
		SQLitePath:             orDefault(getenv("DB_SQLITE_PATH"), postgres.InMemorySQLite),
		DBHost:                 getenv("DB_HOST"),
		DBReplicaHost:          getenv("DB_REPLICA_HOST"),
		DBPort:                 orDefault(getenv("DB_PORT"), "5432"),
		DBUser:                 getenv("DB_USER"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 getenv("DB_NAME"),
		DBSslMode:              orDefault(getenv("DB_SSLMODE"), "disable"),
		RedisURL:               getenv("REDIS_URL"),
		NatsURL:                getenv("NATS_URL"),
		StanClusterID:          getenv("STAN_CLUSTER_ID"),
		StanClientID:           orDefault(getenv("STAN_CLIENT_ID"), defaultStanClientID),
		StanOrderEventsSubject: orDefault(getenv("STAN_ORDER_EVENTS_SUBJECT"), defaultOrderEventsTopic),
		OutboxRelaySchedule:    orDefault(getenv("OUTBOX_RELAY_SCHEDULE"), jobs.DefaultOutboxRelaySchedule),
		OTLPEndpoint:           getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	var ttlErr, batchErr, traceErr error
	cfg.OrderCacheTTL, ttlErr = parseDuration("ORDER_CACHE_TTL", getenv("ORDER_CACHE_TTL"), ordercache.DefaultTTL)
	cfg.OutboxBatchSize, batchErr = parseBatchSize(getenv("OUTBOX_BATCH_SIZE"))
	cfg.TraceStdout, traceErr = parseBool("OTEL_TRACES_STDOUT", getenv("OTEL_TRACES_STDOUT"))

	var stanErr error
	if cfg.NatsURL != "" && cfg.StanClusterID == "" {
		stanErr = errs.NewValueIsRequiredError("STAN_CLUSTER_ID")
	}

	if err := errors.Join(ttlErr, batchErr, traceErr, stanErr); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UsesPostgres is false when no database host is configured; the service then
// stores orders in SQLite at SQLitePath.
func (c Config) UsesPostgres() bool {
	return c.DBHost != ""
}

// PostgresDSN builds a key=value DSN for host with the shared credentials, so
// the primary and the replica differ only by host.
func (c Config) PostgresDSN(host string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func parseDuration(key, raw string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsOutOfRangeError(key, raw, "1ns", "unbounded")
	}
	return d, nil
}

func parseBatchSize(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return defaultOutboxBatchSize, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("OUTBOX_BATCH_SIZE", err)
	}
	if n < 1 || n > commands.MaxOutboxBatchSize {
		return 0, errs.NewValueIsOutOfRangeError("OUTBOX_BATCH_SIZE", n, 1, commands.MaxOutboxBatchSize)
	}
	return n, nil
}

func parseBool(key, raw string) (bool, error) {
	if strings.TrimSpace(raw) == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return b, nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
