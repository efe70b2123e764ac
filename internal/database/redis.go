package database

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
)

// InitRedis initializes the Redis client. It returns nil when Redis is disabled or unreachable
// so callers can fall back to process-local caching.
func InitRedis(ctx context.Context) *redis.Client {
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	if !viper.GetBool("redis.enabled") {
		log.Println("[DATABASE] Redis disabled, using in-memory cache")
		return nil
	}

	addr := viper.GetString("redis.host") + ":" + viper.GetString("redis.port")
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("[DATABASE] Redis connection failed, continuing without Redis: %v", err)
		rdb.Close()
		return nil
	}

	log.Printf("[DATABASE] Redis connection established at %s", addr)
	return rdb
}
