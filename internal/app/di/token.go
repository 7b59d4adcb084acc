package di

import (
	useradapters "recipe_backend/internal/feature/user/adapters"
	"recipe_backend/internal/feature/user/usecase"
	"recipe_backend/internal/platform/token"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewTokenRepository creates a TokenRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to Postgres.
func NewTokenRepository(rdb *redis.Client, db *gorm.DB) usecase.TokenRepository {
	if rdb != nil {
		return token.NewTokenRedis(rdb, "token")
	}
	return useradapters.NewTokenPostgres(db)
}
