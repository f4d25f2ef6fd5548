package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type navs struct {
	Names []string `json:"names"`
}

func newRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCache_JSONRoundTrip(t *testing.T) {
	c, mr := newRedis(t)
	ctx := context.Background()

	var got navs
	assert.ErrorIs(t, c.GetJSON(ctx, NavKey, &got), ErrMiss)

	require.NoError(t, c.SetJSON(ctx, NavKey, navs{Names: []string{"Go"}}, time.Minute))
	require.NoError(t, c.GetJSON(ctx, NavKey, &got))
	assert.Equal(t, []string{"Go"}, got.Names)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, c.GetJSON(ctx, NavKey, &got), ErrMiss)

	require.NoError(t, c.Delete(ctx))
}

func TestLoader_HitMissInvalidate(t *testing.T) {
	c, mr := newRedis(t)
	l := NewLoader(c, time.Minute)
	ctx := context.Background()

	var calls int
	fetch := func(context.Context) (navs, error) {
		calls++
		return navs{Names: []string{"Go", "Rust"}}, nil
	}

	v, err := Load(ctx, l, NavKey, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Rust"}, v.Names)
	assert.True(t, mr.Exists(NavKey))
	assert.Equal(t, time.Minute, mr.TTL(NavKey))

	_, err = Load(ctx, l, NavKey, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	l.Invalidate(ctx, NavKey)
	assert.False(t, mr.Exists(NavKey))
	_, err = Load(ctx, l, NavKey, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestLoader_FetchErrorNotCached(t *testing.T) {
	c, mr := newRedis(t)
	l := NewLoader(c, time.Minute)
	boom := errors.New("boom")

	_, err := Load(context.Background(), l, NavKey, func(context.Context) (navs, error) {
		return navs{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(NavKey))
}

func TestLoader_NilCachePassThrough(t *testing.T) {
	ctx := context.Background()
	var calls int
	fetch := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	for _, l := range []*Loader{nil, NewLoader(nil, 0)} {
		calls = 0
		v1, err := Load(ctx, l, NavKey, fetch)
		require.NoError(t, err)
		v2, err := Load(ctx, l, NavKey, fetch)
		require.NoError(t, err)
		assert.Equal(t, 1, v1)
		assert.Equal(t, 2, v2)
		l.Invalidate(ctx, NavKey)
	}
}

func TestLoader_RedisDownFallsBack(t *testing.T) {
	c, mr := newRedis(t)
	l := NewLoader(c, time.Minute)
	mr.Close()

	v, err := Load(context.Background(), l, NavKey, func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
}

func TestLoader_ConcurrentMissFetchesOnce(t *testing.T) {
	c, _ := newRedis(t)
	l := NewLoader(c, time.Minute)

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "value", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Load(context.Background(), l, NavKey, fetch)
			assert.NoError(t, err)
			assert.Equal(t, "value", v)
		}()
	}
	// 等所有协程进入等待
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestLoader_FetchIgnoresCallerCancel(t *testing.T) {
	c, _ := newRedis(t)
	l := NewLoader(c, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (navs, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return navs{}, err
		}
		return navs{Names: []string{"Go"}}, nil
	}

	done := make(chan error, 1)
	var got navs
	go func() {
		var err error
		got, err = Load(ctx, l, NavKey, fetch)
		done <- err
	}()
	<-started
	cancel()
	close(release)

	require.NoError(t, <-done)
	assert.Equal(t, []string{"Go"}, got.Names)

	// 结果已回写缓存
	cached, err := Load(context.Background(), l, NavKey, func(context.Context) (navs, error) {
		return navs{}, errors.New("不应回源")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, cached.Names)
}
