package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisLoanCache is a read-through cache for loan lookups, keyed by loan id.
type redisLoanCache struct {
	client *redis.Client
}

func NewLoanCache(client *redis.Client) LoanCache {
	return &redisLoanCache{client: client}
}

func (r *redisLoanCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *redisLoanCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisLoanCache) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
