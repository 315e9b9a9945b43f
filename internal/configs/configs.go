package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/sirupsen/logrus"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8081"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	StoreBackend  string `env:"STORE_BACKEND" envDefault:"file"`
	StoreFilePath string `env:"STORE_FILE_PATH" envDefault:"data/store.json"`
	OrdersKey     string `env:"ORDERS_KEY" envDefault:"orders"`
	NextIDKey     string `env:"NEXT_ID_KEY" envDefault:"nextOrderId"`

	DatabaseURL     string `env:"DATABASE_URL" envDefault:""`
	PostgresHost    string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort    string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser    string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPass    string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB      string `env:"POSTGRES_DB" envDefault:"orders"`
	PostgresSSLMode string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisPrefix string `env:"REDIS_PREFIX" envDefault:"order-desk"`

	KafkaEnabled     bool          `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers     string        `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaIntakeTopic string        `env:"KAFKA_INTAKE_TOPIC" envDefault:"orders.intake"`
	KafkaGroupID     string        `env:"KAFKA_GROUP_ID" envDefault:"order-desk"`
	KafkaDLQTopic    string        `env:"KAFKA_DLQ_TOPIC" envDefault:"orders.intake.dlq"`
	KafkaEventsTopic string        `env:"KAFKA_EVENTS_TOPIC" envDefault:"orders.events"`
	KafkaMaxRetries  int           `env:"KAFKA_MAX_RETRIES" envDefault:"5"`
	KafkaBackoff     time.Duration `env:"KAFKA_BACKOFF" envDefault:"200ms"`

	PrintSpoolDir string `env:"PRINT_SPOOL_DIR" envDefault:"spool"`
	PrintCommand  string `env:"PRINT_COMMAND" envDefault:""`

	DraftsFilePath string `env:"DRAFTS_FILE_PATH" envDefault:"data/drafts.json"`
}

func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	switch c.StoreBackend {
	case BackendMemory, BackendFile, BackendPostgres, BackendRedis:
	default:
		return Config{}, fmt.Errorf("config parse: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return c, nil
}

// SetupLogging applies LOG_LEVEL and LOG_FORMAT to the standard logrus logger.
func (c Config) SetupLogging() error {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logrus.SetLevel(lvl)
	if strings.EqualFold(c.LogFormat, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func (c Config) KafkaBrokersSlice() []string {
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) PgDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser,
		c.PostgresPass,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
		c.PostgresSSLMode,
	)
}
