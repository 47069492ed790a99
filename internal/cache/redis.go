package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const presenceTTL = 5 * time.Minute

type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(addr string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx := context.Background()
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{Client: client}, nil
}

// SetPresence marks a user online or offline in the cache. The durable flag
// on the user row is authoritative; this key only serves cheap reads.
func (c *RedisCache) SetPresence(ctx context.Context, userID string, online bool) error {
	key := presenceKey(userID)
	if !online {
		return c.Client.Del(ctx, key).Err()
	}
	return c.Client.Set(ctx, key, "1", presenceTTL).Err()
}

func (c *RedisCache) IsOnline(ctx context.Context, userID string) (bool, error) {
	n, err := c.Client.Exists(ctx, presenceKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func presenceKey(userID string) string {
	return "presence:" + userID
}
