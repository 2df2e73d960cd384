package store

import (
	"fmt"

	"github.com/wapi/api/internal/config"
	"github.com/wapi/api/internal/database"
)

// Open connects to the configured backend. Relational backends are migrated
// before use.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		return NewRedisStore(cfg.RedisURL)
	case config.BackendPostgres, config.BackendSQLite:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return NewGormStore(db), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
