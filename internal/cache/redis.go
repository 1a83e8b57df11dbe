package cache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Redis backs the TTL cache with a shared Redis instance so repeated
// identical sub-queries are deduplicated across processes.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

func NewRedis(url, prefix string) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Redis{rdb: redis.NewClient(opt), prefix: prefix}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	v, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return v, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	_ = r.rdb.Set(ctx, r.prefix+key, value, ttl).Err()
}
