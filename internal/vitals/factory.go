package vitals

import (
	"fmt"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/config"
)

// NewStore builds a reading store from configuration. The default backend
// is Redis.
func NewStore(cfg config.VitalsConfig) (Store, error) {
	switch cfg.Backend {
	case "", "redis":
		return NewRedisStore(RedisConfig{
			Addr:      cfg.Addr,
			Password:  cfg.Password,
			DB:        cfg.DB,
			KeyPrefix: cfg.KeyPrefix,
			Retention: cfg.Retention,
		})
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported vitals backend: %s (supported: redis, memory)", cfg.Backend)
	}
}
