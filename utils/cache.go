package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"courtside/config"
)

var (
	// AuthCacheClient is the dedicated client for session authorization caching.
	AuthCacheClient *redis.Client
	// CodeCacheClient is the dedicated client for one-time login codes.
	CodeCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (DB %d): %v", db, err)
	}
	return client
}

// InitAuthCache initializes the Redis client for session authorization caching.
func InitAuthCache() {
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
}

// GetAuthCacheClient returns the Redis client for session authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitCodeCache initializes the Redis client for one-time login codes.
func InitCodeCache() {
	CodeCacheClient = newRedisClient(config.AppConfig.RedisCodeDB)
}

// GetCodeCacheClient returns the Redis client for one-time login codes.
func GetCodeCacheClient() *redis.Client {
	if CodeCacheClient == nil {
		InitCodeCache()
	}
	return CodeCacheClient
}
