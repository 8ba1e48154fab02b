// Package bootstrap establishes runtime dependencies shared by the commands.
package bootstrap

import (
	"fmt"

	"devlink/internal/cache"
	"devlink/internal/config"
	"devlink/internal/database"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis. The Redis client is nil
// when the server is unreachable; callers run uncached in that case.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return db, cache.GetClient(), nil
}
