package subjects

import (
	"fmt"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/config"
)

// NewStore builds a subject registry from configuration. The default
// backend is Postgres.
func NewStore(cfg config.SubjectsConfig) (Store, error) {
	switch cfg.Backend {
	case "", "postgres":
		return NewPostgresStore(PostgresConfig{
			Host:            cfg.Host,
			Port:            cfg.Port,
			User:            cfg.User,
			Password:        cfg.Password,
			Database:        cfg.Database,
			SSLMode:         cfg.SSLMode,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported subjects backend: %s (supported: postgres, memory)", cfg.Backend)
	}
}
