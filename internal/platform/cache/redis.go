package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// New creates a Redis client and reports whether it answered a ping. The
// client is returned either way; callers decide how loudly to complain.
func New(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return client, client.Ping(ctx).Err()
}
