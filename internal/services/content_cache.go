package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"space/internal/models"
	"space/internal/utils"

	"github.com/go-redis/redis/v8"
)

// ContentCache 探索内容缓存，条目在写入后 TTL 内有效
type ContentCache interface {
	Get(ctx context.Context, key string) ([]models.ContentItem, bool)
	Set(ctx context.Context, key string, items []models.ContentItem)
}

func cloneItems(items []models.ContentItem) []models.ContentItem {
	out := make([]models.ContentItem, len(items))
	copy(out, items)
	return out
}

// MemoryContentCache 进程内 LRU + TTL
type MemoryContentCache struct {
	lru *utils.TTLCache[[]models.ContentItem]
}

func NewMemoryContentCache(size int, ttl time.Duration) *MemoryContentCache {
	return &MemoryContentCache{lru: utils.NewTTLCache[[]models.ContentItem](size, ttl)}
}

// WithClock 测试用
func (c *MemoryContentCache) WithClock(now func() time.Time) *MemoryContentCache {
	c.lru.WithClock(now)
	return c
}

func (c *MemoryContentCache) Get(_ context.Context, key string) ([]models.ContentItem, bool) {
	items, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return cloneItems(items), true
}

func (c *MemoryContentCache) Set(_ context.Context, key string, items []models.ContentItem) {
	c.lru.Set(key, cloneItems(items))
}

func (c *MemoryContentCache) Len() int {
	return c.lru.Len()
}

type redisEntry struct {
	Items    []models.ContentItem `json:"items"`
	CachedAt time.Time            `json:"cached_at"`
}

// RedisContentCache 多实例共享缓存，Redis 出错时按未命中处理
type RedisContentCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	now    func() time.Time
}

func NewRedisContentCache(client *redis.Client, ttl time.Duration) *RedisContentCache {
	return &RedisContentCache{
		client: client,
		ttl:    ttl,
		prefix: "space:content:",
		now:    time.Now,
	}
}

// WithClock 测试用
func (c *RedisContentCache) WithClock(now func() time.Time) *RedisContentCache {
	c.now = now
	return c
}

func (c *RedisContentCache) Get(ctx context.Context, key string) ([]models.ContentItem, bool) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[content] redis get %s failed: %v", key, err)
		}
		return nil, false
	}

	var entry redisEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		log.Printf("[content] redis entry %s is corrupt: %v", key, err)
		return nil, false
	}
	if c.now().Sub(entry.CachedAt) >= c.ttl {
		return nil, false
	}
	return entry.Items, true
}

func (c *RedisContentCache) Set(ctx context.Context, key string, items []models.ContentItem) {
	raw, err := json.Marshal(redisEntry{Items: items, CachedAt: c.now()})
	if err != nil {
		log.Printf("[content] encode cache entry %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		log.Printf("[content] redis set %s failed: %v", key, err)
	}
}
