package utils

import (
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem 包装缓存数据和写入时间
type CacheItem[V any] struct {
	Data     V
	CachedAt time.Time
}

// TTLCache 容量有界的本地缓存：LRU 淘汰 + 读取时检查 TTL
type TTLCache[V any] struct {
	lruCache *lru.Cache[string, CacheItem[V]]
	ttl      time.Duration
	now      func() time.Time
}

// NewTTLCache 创建缓存，size 为最大条目数
func NewTTLCache[V any](size int, ttl time.Duration) *TTLCache[V] {
	if size <= 0 {
		size = 256
	}
	l, err := lru.New[string, CacheItem[V]](size)
	if err != nil {
		log.Fatalf("Failed to create LRU cache: %v", err)
	}
	return &TTLCache[V]{
		lruCache: l,
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock 替换时间源，测试中用于模拟过期
func (c *TTLCache[V]) WithClock(now func() time.Time) *TTLCache[V] {
	c.now = now
	return c
}

// Set 写入缓存，写入时间取当前时间
func (c *TTLCache[V]) Set(key string, data V) {
	c.lruCache.Add(key, CacheItem[V]{
		Data:     data,
		CachedAt: c.now(),
	})
}

// Get 读取缓存，不存在或已过期时返回 false
func (c *TTLCache[V]) Get(key string) (V, bool) {
	var zero V
	val, ok := c.lruCache.Get(key)
	if !ok {
		return zero, false
	}

	// now - CachedAt >= ttl 即视为过期
	if c.now().Sub(val.CachedAt) >= c.ttl {
		c.lruCache.Remove(key)
		return zero, false
	}

	return val.Data, true
}

// Len 当前条目数（含尚未被读到的过期条目）
func (c *TTLCache[V]) Len() int {
	return c.lruCache.Len()
}
