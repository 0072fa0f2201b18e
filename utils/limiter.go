package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Allow counts one hit for key in a fixed window and reports whether the
// caller is still under limit. Redis errors let the request through.
func Allow(ctx context.Context, rdb *redis.Client, key string, limit int64, window time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}
	k := fmt.Sprintf("ratelimit:%s", key)
	cnt, err := rdb.Incr(ctx, k).Result()
	if err != nil {
		return true, err
	}
	if cnt == 1 {
		if err := rdb.Expire(ctx, k, window).Err(); err != nil {
			return true, err
		}
	}
	return cnt <= limit, nil
}

// Blacklist marks a token as revoked until it would have expired anyway.
func Blacklist(ctx context.Context, rdb *redis.Client, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, "blacklist:"+token, "1", ttl).Err()
}

// IsBlacklisted reports whether the token was revoked.
func IsBlacklisted(ctx context.Context, rdb *redis.Client, token string) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	n, err := rdb.Exists(ctx, "blacklist:"+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
