// Package config provides configuration structures and validation for the
// statement-ledger service. Configuration covers the HTTP server, both
// persistence backends, the optional ingestion event stream, and the
// operational limits applied to CSV uploads.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds the complete application configuration. Each field represents
// one subsystem and is validated during application startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	Kafka       KafkaConfig
	Ingest      IngestConfig
	Rules       RulesConfig
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
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string        // Database connection string
	MaxConns        int32         // Maximum number of open connections
	MinConns        int32         // Minimum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	MigrationsPath  string        // Path to migration files
}

// MongoDBConfig contains MongoDB configuration for the ingestion report archive
type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// KafkaConfig contains configuration for the ingestion event producer.
// When Enabled is false the service runs without a broker and batch events
// are discarded.
type KafkaConfig struct {
	Enabled           bool
	Brokers           string
	IngestionTopic    string
	NumPartitions     int
	ReplicationFactor int
	MaxWait           time.Duration
}

// IngestConfig contains the operational limits and policy applied to uploads
type IngestConfig struct {
	MaxUploadBytes int64 // Reject files larger than this before parsing
	MaxRows        int   // Reject files with more data rows than this
	Strict         bool  // All-or-nothing: any bad row rejects the whole file
}

// RulesConfig contains category rule file configuration
type RulesConfig struct {
	Path string // YAML rule file; empty means built-in defaults only
}

// WorkerPoolConfig contains worker pool configuration for recategorization
type WorkerPoolConfig struct {
	Size int
}

// validate performs validation of all configuration values, ensuring they
// meet minimum requirements and logical constraints
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	// Validate PostgreSQL config
	if c.Postgres.URL == "" {
		validationErrors = append(validationErrors, "POSTGRES_URL is required")
	}
	if c.Postgres.MaxConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONNS must be greater than 0")
	}
	if c.Postgres.MinConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MIN_CONNS must be greater than 0")
	}
	if c.Postgres.ConnMaxLifetime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
	}
	if c.Postgres.ConnMaxIdleTime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
	}

	// Validate MongoDB config
	if c.MongoDB.URI == "" {
		validationErrors = append(validationErrors, "MONGO_URI is required")
	}
	if c.MongoDB.Database == "" {
		validationErrors = append(validationErrors, "MONGO_DATABASE is required")
	}
	if c.MongoDB.Timeout <= 0 {
		validationErrors = append(validationErrors, "MONGO_TIMEOUT must be greater than 0")
	}
	if c.MongoDB.MaxPoolSize <= 0 {
		validationErrors = append(validationErrors, "MONGO_MAX_POOL_SIZE must be greater than 0")
	}

	// Validate Kafka config only when the producer is enabled
	if c.Kafka.Enabled {
		if c.Kafka.Brokers == "" {
			validationErrors = append(validationErrors, "KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if c.Kafka.IngestionTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_INGESTION_TOPIC is required when KAFKA_ENABLED is true")
		}
		if c.Kafka.MaxWait <= 0 {
			validationErrors = append(validationErrors, "KAFKA_MAX_WAIT must be greater than 0")
		}
	}

	// Validate ingestion limits
	if c.Ingest.MaxUploadBytes <= 0 {
		validationErrors = append(validationErrors, "INGEST_MAX_UPLOAD_BYTES must be greater than 0")
	}
	if c.Ingest.MaxRows <= 0 {
		validationErrors = append(validationErrors, "INGEST_MAX_ROWS must be greater than 0")
	}

	// Validate WorkerPool config
	if c.WorkerPool.Size <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_SIZE must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
