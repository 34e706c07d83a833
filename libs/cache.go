package libs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps an optional Redis client. Every method is a no-op (or a miss) when the
// client is nil so the API keeps working without Redis.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// DeletePattern removes every key matching pattern.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	if !c.Enabled() {
		return nil
	}
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func revokedKey(tokenID string) string {
	return "revoked_token:" + tokenID
}

func (c *Cache) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if !c.Enabled() || tokenID == "" || ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, revokedKey(tokenID), 1, ttl).Err()
}

func (c *Cache) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if !c.Enabled() || tokenID == "" {
		return false, nil
	}
	err := c.client.Get(ctx, revokedKey(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
