package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

// kv is the subset of the redis client the adapters use.
type kv interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// StateStore keeps OAuth state values until the provider redirects back.
// Key format: oauth:state:<state>
type StateStore struct {
	client kv
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Save binds state to provider for ttl.
func (s *StateStore) Save(ctx context.Context, state, provider string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(state), provider, ttl).Err(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Consume reads and deletes state in one round trip so it cannot be replayed.
func (s *StateStore) Consume(ctx context.Context, state string) (string, error) {
	provider, err := s.client.GetDel(ctx, s.key(state)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("consume state: %w", err)
	}
	return provider, nil
}

func (s *StateStore) key(state string) string {
	return "oauth:state:" + state
}
