// Package bootstrap wires the process runtime: database, schema, Redis and
// optional sample data.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"postboard/internal/cache"
	"postboard/internal/config"
	"postboard/internal/database"
	"postboard/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SkipSchema leaves the schema untouched; cmd/migrate manages it itself.
	SkipSchema     bool
	SeedSampleData bool
}

// InitRuntime connects to the database, applies the schema, initializes Redis
// and optionally seeds the sample data.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if !opts.SkipSchema {
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("schema apply failed: %w", err)
		}
	}

	// Nil when REDIS_URL is empty or unreachable; lookups then skip the cache.
	r := cache.InitRedis(cfg.RedisURL)

	if opts.SeedSampleData {
		if err := seed.SampleData(ctx, db); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("failed to seed sample data: %w", err)
		}
		log.Println("sample data ensured")
	}

	return db, r, nil
}
