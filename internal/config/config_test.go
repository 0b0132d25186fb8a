package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONTENT_TTL", "")
	t.Setenv("CONTENT_TIMEOUT", "not-a-duration")
	t.Setenv("LLM_RPM", "abc")
	t.Setenv("CONTENT_IMAGE_CATEGORIES", "")

	cfg := Load()

	if cfg.ContentTTL != 5*time.Minute {
		t.Errorf("Expected TTL 5m, got %s", cfg.ContentTTL)
	}
	if cfg.ContentTimeout != 12*time.Second {
		t.Errorf("Expected timeout fallback 12s, got %s", cfg.ContentTimeout)
	}
	if cfg.LLMRPM != 15 {
		t.Errorf("Expected LLM_RPM fallback 15, got %d", cfg.LLMRPM)
	}
	if cfg.ContentBatchSize != 12 {
		t.Errorf("Expected batch size 12, got %d", cfg.ContentBatchSize)
	}
	if len(cfg.ContentImageCategories) == 0 {
		t.Error("Expected default image categories")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONTENT_TTL", "30s")
	t.Setenv("CONTENT_IMAGE_CATEGORIES", "Photos, Wallpapers ,")
	t.Setenv("LLM_BASE_URL", "http://localhost:9999/v1/")

	cfg := Load()

	if cfg.ContentTTL != 30*time.Second {
		t.Errorf("Expected TTL 30s, got %s", cfg.ContentTTL)
	}
	if len(cfg.ContentImageCategories) != 2 || cfg.ContentImageCategories[1] != "Wallpapers" {
		t.Errorf("Unexpected categories: %v", cfg.ContentImageCategories)
	}
	if cfg.LLMBaseURL != "http://localhost:9999/v1" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.LLMBaseURL)
	}
}

func TestParseFeedMap(t *testing.T) {
	feeds := ParseFeedMap("Tech=https://example.com/rss; World = rsshub://bbc/world ;broken;=x")
	if len(feeds) != 2 {
		t.Fatalf("Expected 2 feeds, got %d: %v", len(feeds), feeds)
	}
	if feeds["World"] != "rsshub://bbc/world" {
		t.Errorf("Unexpected World feed: %s", feeds["World"])
	}
}
