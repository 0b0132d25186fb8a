package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>World Desk</title>
  <link>https://news.example.com</link>
  <description>Headlines</description>
  <item>
    <title>Ocean cleanup hits milestone</title>
    <link>https://news.example.com/ocean</link>
    <guid>ocean-1</guid>
    <description>Nets pulled from the Pacific.</description>
    <enclosure url="https://news.example.com/ocean.jpg" type="image/jpeg" length="100"/>
    <pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>No link here</title>
    <description>Should be skipped.</description>
  </item>
  <item>
    <title>City adds bike lanes</title>
    <link>https://news.example.com/bikes</link>
  </item>
</channel>
</rss>`

func TestRSSFetchItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	items, err := NewRSSFetcher().FetchItems(context.Background(), "World", server.URL, 10)
	if err != nil {
		t.Fatalf("FetchItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.ID != "ocean-1" || first.Type != "article" || first.Category != "World" {
		t.Errorf("unexpected first item %+v", first)
	}
	if first.ImageURL != "https://news.example.com/ocean.jpg" {
		t.Errorf("enclosure image not used: %s", first.ImageURL)
	}
	if first.Source.Name != "World Desk" || first.Source.URL != "https://news.example.com/ocean" {
		t.Errorf("unexpected source %+v", first.Source)
	}

	second := items[1]
	if second.ID != "https://news.example.com/bikes" {
		t.Errorf("id should fall back to link, got %s", second.ID)
	}
	if second.Description != second.Title {
		t.Errorf("empty description should fall back to title")
	}
	for _, item := range items {
		if err := validate.Struct(item); err != nil {
			t.Errorf("item %s invalid: %v", item.ID, err)
		}
	}
}

func TestRSSFetchItemsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	items, err := NewRSSFetcher().FetchItems(context.Background(), "World", server.URL, 1)
	if err != nil {
		t.Fatalf("FetchItems: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("limit ignored: %d items", len(items))
	}
}

func TestRSSFetchItemsErrors(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<rss version="2.0"><channel><title>Empty</title></channel></rss>`))
	}))
	defer empty.Close()

	_, err := NewRSSFetcher().FetchItems(context.Background(), "World", empty.URL, 5)
	if ClassifyError(err) != KindMalformed {
		t.Errorf("empty feed should be malformed, got %v", err)
	}

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	if _, err := NewRSSFetcher().FetchItems(context.Background(), "World", broken.URL, 5); err == nil {
		t.Errorf("expected error for HTTP 500")
	}
}

func TestNormalizeRSSURL(t *testing.T) {
	t.Setenv("RSSHUB_INSTANCE_URL", "https://hub.example.com/")

	if got := normalizeRSSURL("rsshub://github/trending/daily"); got != "https://hub.example.com/github/trending/daily" {
		t.Errorf("got %s", got)
	}
	if got := normalizeRSSURL("https://a.example.com/feed"); got != "https://a.example.com/feed" {
		t.Errorf("plain URL changed: %s", got)
	}
}
