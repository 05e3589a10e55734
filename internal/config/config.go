// Package config holds the application configuration shared by the API
// server, the ingestion worker and the tools.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Vitals   VitalsConfig   `mapstructure:"vitals"`
	Subjects SubjectsConfig `mapstructure:"subjects"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	HTTPPort     int           `mapstructure:"http_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	BodyLimit    int           `mapstructure:"body_limit"` // bytes
}

// VitalsConfig represents the reading store configuration
type VitalsConfig struct {
	Backend   string        `mapstructure:"backend"` // redis (default), memory
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	Retention time.Duration `mapstructure:"retention"`
}

// SubjectsConfig represents the subject registry configuration
type SubjectsConfig struct {
	Backend  string `mapstructure:"backend"` // postgres (default), memory
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// QueueConfig represents message queue configuration
type QueueConfig struct {
	Type     string `mapstructure:"type"` // nats (default), redis, kafka, memory
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`

	// Redis-specific options
	RedisDB       int    `mapstructure:"redis_db"`
	RedisStream   string `mapstructure:"redis_stream"`
	RedisGroup    string `mapstructure:"redis_group"`
	RedisConsumer string `mapstructure:"redis_consumer"`

	// Kafka-specific options
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	KafkaGroupID string   `mapstructure:"kafka_group_id"`
}

// PipelineConfig tunes the analytics pipeline
type PipelineConfig struct {
	ForecastHorizon    int     `mapstructure:"forecast_horizon"`     // points per forecast
	ForecastMinPoints  int     `mapstructure:"forecast_min_points"`  // minimum history per signal
	AnomalyAlgorithm   string  `mapstructure:"anomaly_algorithm"`    // isolation_forest (default), zscore
	Contamination      float64 `mapstructure:"contamination"`        // expected anomaly fraction
	MaxProcessedRows   int     `mapstructure:"max_processed_rows"`   // rows returned by feature processing
	SummaryTrendDays   int     `mapstructure:"summary_trend_days"`   // history window for trend summaries
	SummaryRollupHours int     `mapstructure:"summary_rollup_hours"` // history window for rollups
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	APIKeys []string `mapstructure:"api_keys"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, console
	OutputPath string `mapstructure:"output_path"`
}

// Validate checks the configuration for inconsistencies
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid server http_port: %d", c.Server.HTTPPort)
	}

	switch c.Vitals.Backend {
	case "", "redis", "memory":
	default:
		return fmt.Errorf("invalid vitals backend: %s (supported: redis, memory)", c.Vitals.Backend)
	}

	switch c.Subjects.Backend {
	case "", "postgres", "memory":
	default:
		return fmt.Errorf("invalid subjects backend: %s (supported: postgres, memory)", c.Subjects.Backend)
	}

	if c.Pipeline.Contamination < 0 || c.Pipeline.Contamination >= 1 {
		return fmt.Errorf("invalid pipeline contamination: %f (must be in [0, 1))", c.Pipeline.Contamination)
	}
	if c.Pipeline.ForecastHorizon < 0 {
		return fmt.Errorf("invalid pipeline forecast_horizon: %d", c.Pipeline.ForecastHorizon)
	}

	if c.Auth.Enabled && len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("auth enabled but no api_keys configured")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	return nil
}
