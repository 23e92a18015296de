// Package config holds the runtime settings of the API gateway and the ledger
// projector. Both binaries share one Config shape and load it from a .env file
// overlaid by environment variables.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config is the complete application configuration. It is validated once at
// startup, before any connection is opened.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Auth        AuthConfig
	Kafka       KafkaConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	Outbox      OutboxConfig
	WorkerPool  WorkerPoolConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// AuthConfig controls token issuance and password hashing.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// KafkaConfig contains the balance event stream settings
type KafkaConfig struct {
	Brokers            string
	BalanceEventsTopic string
	NumPartitions      int
	ReplicationFactor  int
	ConsumerGroup      string
	MinBytes           int
	MaxBytes           int
	MaxWait            time.Duration
	StartOffset        int64
	DLQTopic           string
}

// BrokerList splits the comma separated broker string.
func (k KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MigrationsPath  string
}

// MongoDBConfig contains MongoDB configuration
type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// OutboxConfig contains outbox relay configuration
type OutboxConfig struct {
	PollingInterval  time.Duration
	BatchSize        int
	MaxRetryAttempts int
}

// WorkerPoolConfig contains worker pool configuration
type WorkerPoolConfig struct {
	Size int
}

// IsProduction reports whether the application runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Application.Env == "production"
}

// validate checks every section and reports all violations at once.
func (c *Config) validate() error {
	var problems []string

	problems = append(problems, c.Server.validate()...)
	problems = append(problems, c.Auth.validate()...)
	problems = append(problems, c.Kafka.validate()...)
	problems = append(problems, c.Postgres.validate()...)
	problems = append(problems, c.MongoDB.validate()...)

	if c.Outbox.PollingInterval <= 0 {
		problems = append(problems, "OUTBOX_POLLING_INTERVAL must be greater than 0")
	}
	if c.Outbox.BatchSize <= 0 {
		problems = append(problems, "OUTBOX_BATCH_SIZE must be greater than 0")
	}
	if c.Outbox.MaxRetryAttempts <= 0 {
		problems = append(problems, "OUTBOX_MAX_RETRY_ATTEMPTS must be greater than 0")
	}
	if c.WorkerPool.Size <= 0 {
		problems = append(problems, "WORKER_POOL_SIZE must be greater than 0")
	}
	if c.IsProduction() && c.Auth.JWTSecret == defaultJWTSecret {
		problems = append(problems, "AUTH_JWT_SECRET must be set in production")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, ", "))
	}
	return nil
}

func (s ServerConfig) validate() []string {
	var problems []string
	if s.Port <= 0 {
		problems = append(problems, "SERVER_PORT must be greater than 0")
	}
	if s.ShutdownTimeout <= 0 {
		problems = append(problems, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if s.ReadTimeout <= 0 {
		problems = append(problems, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if s.WriteTimeout <= 0 {
		problems = append(problems, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if s.IdleTimeout <= 0 {
		problems = append(problems, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}
	return problems
}

func (a AuthConfig) validate() []string {
	var problems []string
	if len(a.JWTSecret) < 16 {
		problems = append(problems, "AUTH_JWT_SECRET must be at least 16 characters")
	}
	if a.TokenTTL <= 0 {
		problems = append(problems, "AUTH_TOKEN_TTL must be greater than 0")
	}
	if a.BcryptCost < 4 || a.BcryptCost > 31 {
		problems = append(problems, "AUTH_BCRYPT_COST must be between 4 and 31")
	}
	return problems
}

func (k KafkaConfig) validate() []string {
	var problems []string
	if len(k.BrokerList()) == 0 {
		problems = append(problems, "KAFKA_BROKERS is required")
	}
	if k.BalanceEventsTopic == "" {
		problems = append(problems, "KAFKA_BALANCE_EVENTS_TOPIC is required")
	}
	if k.ConsumerGroup == "" {
		problems = append(problems, "KAFKA_CONSUMER_GROUP is required")
	}
	if k.MinBytes <= 0 {
		problems = append(problems, "KAFKA_CONSUMER_MIN_BYTES must be greater than 0")
	}
	if k.MaxBytes <= 0 {
		problems = append(problems, "KAFKA_CONSUMER_MAX_BYTES must be greater than 0")
	}
	if k.MaxWait <= 0 {
		problems = append(problems, "KAFKA_CONSUMER_MAX_WAIT must be greater than 0")
	}
	if k.DLQTopic == "" {
		problems = append(problems, "KAFKA_DLQ_TOPIC is required")
	}
	return problems
}

func (p PostgresConfig) validate() []string {
	var problems []string
	if p.URL == "" {
		problems = append(problems, "POSTGRES_URL is required")
	}
	if p.MaxConns <= 0 {
		problems = append(problems, "POSTGRES_MAX_CONNS must be greater than 0")
	}
	if p.MinConns <= 0 {
		problems = append(problems, "POSTGRES_MIN_CONNS must be greater than 0")
	}
	if p.MinConns > p.MaxConns {
		problems = append(problems, "POSTGRES_MIN_CONNS must not exceed POSTGRES_MAX_CONNS")
	}
	if p.ConnMaxLifetime <= 0 {
		problems = append(problems, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
	}
	if p.ConnMaxIdleTime <= 0 {
		problems = append(problems, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
	}
	return problems
}

func (m MongoDBConfig) validate() []string {
	var problems []string
	if m.URI == "" {
		problems = append(problems, "MONGO_URI is required")
	}
	if m.Database == "" {
		problems = append(problems, "MONGO_DATABASE is required")
	}
	if m.Timeout <= 0 {
		problems = append(problems, "MONGO_TIMEOUT must be greater than 0")
	}
	if m.MaxPoolSize == 0 {
		problems = append(problems, "MONGO_MAX_POOL_SIZE must be greater than 0")
	}
	if m.MinPoolSize == 0 {
		problems = append(problems, "MONGO_MIN_POOL_SIZE must be greater than 0")
	}
	if m.MaxConnIdleTime <= 0 {
		problems = append(problems, "MONGO_MAX_CONN_IDLE_TIME must be greater than 0")
	}
	return problems
}
