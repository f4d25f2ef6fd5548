package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss 缓存未命中
var ErrMiss = errors.New("cache: miss")

// Cache 缓存接口
type Cache interface {
	// GetJSON 获取JSON格式的缓存并反序列化，未命中返回ErrMiss
	GetJSON(ctx context.Context, key string, dest interface{}) error

	// SetJSON 序列化为JSON并设置缓存
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Delete 删除缓存
	Delete(ctx context.Context, keys ...string) error

	// Close 关闭连接
	Close() error
}

// 缓存键名
const (
	NavKey = "blog:navs" // 导航与分类
)

// NavExpiration 导航缓存默认过期时间
const NavExpiration = 10 * time.Minute
