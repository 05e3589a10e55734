package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/healthpipe")
	}

	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix("HEALTHPIPE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.body_limit", 4*1024*1024)

	// Vitals store defaults
	v.SetDefault("vitals.backend", "redis")
	v.SetDefault("vitals.addr", "localhost:6379")
	v.SetDefault("vitals.key_prefix", "vitals")
	v.SetDefault("vitals.retention", "720h")

	// Subject registry defaults
	v.SetDefault("subjects.backend", "postgres")
	v.SetDefault("subjects.host", "localhost")
	v.SetDefault("subjects.port", 5432)
	v.SetDefault("subjects.user", "healthpipe")
	v.SetDefault("subjects.database", "healthpipe")
	v.SetDefault("subjects.ssl_mode", "disable")
	v.SetDefault("subjects.max_open_conns", 10)
	v.SetDefault("subjects.max_idle_conns", 5)
	v.SetDefault("subjects.conn_max_lifetime", "30m")

	// Queue defaults
	v.SetDefault("queue.type", "nats")
	v.SetDefault("queue.url", "nats://localhost:4222")

	// Pipeline defaults
	v.SetDefault("pipeline.forecast_horizon", 24)
	v.SetDefault("pipeline.forecast_min_points", 10)
	v.SetDefault("pipeline.anomaly_algorithm", "isolation_forest")
	v.SetDefault("pipeline.contamination", 0.1)
	v.SetDefault("pipeline.max_processed_rows", 100)
	v.SetDefault("pipeline.summary_trend_days", 7)
	v.SetDefault("pipeline.summary_rollup_hours", 24)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			HTTPPort:     8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			BodyLimit:    4 * 1024 * 1024,
		},
		Vitals: VitalsConfig{
			Backend:   "redis",
			Addr:      "localhost:6379",
			KeyPrefix: "vitals",
			Retention: 720 * time.Hour,
		},
		Subjects: SubjectsConfig{
			Backend:         "postgres",
			Host:            "localhost",
			Port:            5432,
			User:            "healthpipe",
			Database:        "healthpipe",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Queue: QueueConfig{
			Type: "nats",
			URL:  "nats://localhost:4222",
		},
		Pipeline: PipelineConfig{
			ForecastHorizon:    24,
			ForecastMinPoints:  10,
			AnomalyAlgorithm:   "isolation_forest",
			Contamination:      0.1,
			MaxProcessedRows:   100,
			SummaryTrendDays:   7,
			SummaryRollupHours: 24,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
