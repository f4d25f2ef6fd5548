package cache

import (
	"context"
	"errors"
	"time"

	"github.com/Owenun/Windy/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Loader 读穿缓存：命中直接返回，未命中时回源并回写。
// cache为nil时每次都回源。缓存读写失败只记日志，不影响回源结果。
type Loader struct {
	cache Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewLoader 创建读穿缓存
func NewLoader(c Cache, ttl time.Duration) *Loader {
	if ttl <= 0 {
		ttl = NavExpiration
	}
	return &Loader{cache: c, ttl: ttl}
}

// Load 按key读取，并发的未命中只回源一次
func Load[T any](ctx context.Context, l *Loader, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	if l == nil || l.cache == nil {
		return fetch(ctx)
	}

	var cached T
	err := l.cache.GetJSON(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrMiss) {
		logger.Warn("读取缓存失败", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		// 回源结果由所有等待者共享，不随第一个调用方取消
		fctx := context.WithoutCancel(ctx)
		val, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		if err := l.cache.SetJSON(fctx, key, val, l.ttl); err != nil {
			logger.Warn("写入缓存失败", zap.String("key", key), zap.Error(err))
		}
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Invalidate 删除缓存，数据变更后调用
func (l *Loader) Invalidate(ctx context.Context, keys ...string) {
	if l == nil || l.cache == nil {
		return
	}
	if err := l.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("删除缓存失败", zap.Strings("keys", keys), zap.Error(err))
	}
}
