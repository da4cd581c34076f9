// File: service/ai/contextStore.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"concierge/models"
	"concierge/utils"

	"github.com/go-redis/redis/v8"
)

// StateStore persists per-guest conversation state between messages. Get
// returns a fresh greeting-step state when the guest has none, so callers
// never see "not found".
type StateStore interface {
	Get(ctx context.Context, userID string) (*models.ConversationState, error)
	Save(ctx context.Context, state *models.ConversationState) error
	Clear(ctx context.Context, userID string) error
}

type RedisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStateStore wraps a Redis client as a StateStore. A zero ttl keeps
// state until explicitly cleared.
func NewRedisStateStore(client *redis.Client, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, ttl: ttl}
}

func (s *RedisStateStore) Get(ctx context.Context, userID string) (*models.ConversationState, error) {
	key := utils.StateCachePrefix + userID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return models.NewConversationState(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load conversation state: %w", err)
	}

	var state models.ConversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		// A corrupt record should not wedge the guest forever; start over.
		utils.GetLogger().Warn("Dropping unreadable conversation state for " + userID)
		return models.NewConversationState(userID), nil
	}
	return &state, nil
}

func (s *RedisStateStore) Save(ctx context.Context, state *models.ConversationState) error {
	key := utils.StateCachePrefix + state.UserID
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode conversation state: %w", err)
	}
	if err := s.client.Set(ctx, key, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("save conversation state: %w", err)
	}
	return nil
}

func (s *RedisStateStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, utils.StateCachePrefix+userID).Err()
}
