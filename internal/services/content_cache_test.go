package services

import (
	"context"
	"reflect"
	"testing"
	"time"

	"space/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestRedisCache(t *testing.T, ttl time.Duration, clock *fakeClock) (*RedisContentCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisContentCache(client, ttl).WithClock(clock.Now), mr
}

func TestRedisContentCacheExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c, _ := newTestRedisCache(t, 5*time.Minute, clock)
	ctx := context.Background()
	items := []models.ContentItem{sampleItem("r1", "Tech")}

	c.Set(ctx, "Tech-", items)

	got, ok := c.Get(ctx, "Tech-")
	if !ok {
		t.Fatal("expected hit right after Set")
	}
	if !reflect.DeepEqual(got, items) {
		t.Errorf("cached items = %+v, want %+v", got, items)
	}

	clock.Advance(5*time.Minute - time.Nanosecond)
	if _, ok := c.Get(ctx, "Tech-"); !ok {
		t.Errorf("entry should still be valid just before ttl")
	}

	// now - CachedAt == ttl 即过期
	clock.Advance(time.Nanosecond)
	if _, ok := c.Get(ctx, "Tech-"); ok {
		t.Errorf("entry should expire exactly at ttl")
	}
}

func TestRedisContentCacheServerTTL(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c, mr := newTestRedisCache(t, 5*time.Minute, clock)
	ctx := context.Background()

	c.Set(ctx, "Art-Behance", []models.ContentItem{sampleItem("r2", "Art")})

	if ttl := mr.TTL("space:content:Art-Behance"); ttl != 5*time.Minute {
		t.Errorf("server ttl = %v, want 5m", ttl)
	}

	mr.FastForward(5 * time.Minute)
	if _, ok := c.Get(ctx, "Art-Behance"); ok {
		t.Errorf("key evicted by redis should be a miss")
	}
}

func TestRedisContentCacheMisses(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c, mr := newTestRedisCache(t, 5*time.Minute, clock)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Errorf("missing key should be a miss")
	}

	if err := mr.Set("space:content:bad", "{not json"); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}
	if _, ok := c.Get(ctx, "bad"); ok {
		t.Errorf("corrupt entry should be a miss")
	}

	c.Set(ctx, "Tech-", []models.ContentItem{sampleItem("r3", "Tech")})
	mr.Close()
	if _, ok := c.Get(ctx, "Tech-"); ok {
		t.Errorf("unreachable redis should be a miss")
	}
}

func TestContentServiceWithRedisCache(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	cache, _ := newTestRedisCache(t, 5*time.Minute, clock)
	gen := &countingGenerator{}
	s := NewContentService(cache, gen, nil, nil, ContentOptions{Timeout: time.Second})
	ctx := context.Background()

	first := s.Fetch(ctx, "Tech", []string{"HN"})
	second := s.Fetch(ctx, "Tech", []string{"HN"})
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
	if !second.Cached || !reflect.DeepEqual(first.Items, second.Items) {
		t.Errorf("second fetch = %+v, want cached copy of %+v", second, first.Items)
	}
}
