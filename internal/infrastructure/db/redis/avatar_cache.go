package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

const (
	avatarListKey    = "catalog:avatars"
	defaultAvatarTTL = 5 * time.Minute
)

// AvatarCache stores the public avatar listing as a JSON blob.
type AvatarCache struct {
	client kv
	ttl    time.Duration
}

func NewAvatarCache(client *redis.Client, ttl time.Duration) *AvatarCache {
	if ttl <= 0 {
		ttl = defaultAvatarTTL
	}
	return &AvatarCache{client: client, ttl: ttl}
}

// Get reports ok=false on a cache miss.
func (c *AvatarCache) Get(ctx context.Context) ([]domain.Avatar, bool, error) {
	raw, err := c.client.Get(ctx, avatarListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read avatar cache: %w", err)
	}

	var avatars []domain.Avatar
	if err := json.Unmarshal(raw, &avatars); err != nil {
		return nil, false, fmt.Errorf("decode avatar cache: %w", err)
	}
	return avatars, true, nil
}

func (c *AvatarCache) Set(ctx context.Context, avatars []domain.Avatar) error {
	raw, err := json.Marshal(avatars)
	if err != nil {
		return fmt.Errorf("encode avatar cache: %w", err)
	}
	if err := c.client.Set(ctx, avatarListKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write avatar cache: %w", err)
	}
	return nil
}

func (c *AvatarCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, avatarListKey).Err(); err != nil {
		return fmt.Errorf("invalidate avatar cache: %w", err)
	}
	return nil
}
