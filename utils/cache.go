// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/bricker/vivial-sub000/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CheckoutCacheClient holds in-flight checkout sessions.
	CheckoutCacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// RerollCacheClient tracks reroll counters for unauthenticated visitors.
	RerollCacheClient *redis.Client
)

// InitCheckoutCache initializes the Redis client for checkout session storage.
func InitCheckoutCache() {
	CheckoutCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCheckoutDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CheckoutCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Checkout Cache): %v", err)
	}
}

// GetCheckoutCacheClient returns the Redis client for checkout sessions.
func GetCheckoutCacheClient() *redis.Client {
	if CheckoutCacheClient == nil {
		InitCheckoutCache()
	}
	return CheckoutCacheClient
}

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitRerollCache initializes the Redis client for reroll counters.
func InitRerollCache() {
	RerollCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRerollDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := RerollCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Reroll Cache): %v", err)
	}
}

// GetRerollCacheClient returns the Redis client for reroll counters.
func GetRerollCacheClient() *redis.Client {
	if RerollCacheClient == nil {
		InitRerollCache()
	}
	return RerollCacheClient
}

// InitRedis eagerly connects every Redis client at startup.
func InitRedis() {
	InitCheckoutCache()
	InitAuthCache()
	InitRerollCache()
}
