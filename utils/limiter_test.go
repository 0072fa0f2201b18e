package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestAllow(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := Allow(ctx, rdb, "admissions:1.2.3.4", 3, time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := Allow(ctx, rdb, "admissions:1.2.3.4", 3, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Allow(ctx, rdb, "admissions:5.6.7.8", 3, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(time.Hour + time.Second)
	ok, err = Allow(ctx, rdb, "admissions:1.2.3.4", 3, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAllowWithoutRedis(t *testing.T) {
	ok, err := Allow(context.Background(), nil, "k", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBlacklist(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()

	revoked, err := IsBlacklisted(ctx, rdb, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, Blacklist(ctx, rdb, "tok", time.Minute))
	revoked, err = IsBlacklisted(ctx, rdb, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = IsBlacklisted(ctx, rdb, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)
}
