// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"concierge/config"

	"github.com/go-redis/redis/v8"
)

// StateClient is the Redis client holding per-guest conversation state.
var StateClient *redis.Client

// InitStateCache initializes the Redis client for conversation state (using
// the state DB from AppConfig).
func InitStateCache() {
	StateClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisStateDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := StateClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (State): %v", err)
	}
}

// GetStateClient returns the conversation state client.
func GetStateClient() *redis.Client {
	if StateClient == nil {
		InitStateCache()
	}
	return StateClient
}
