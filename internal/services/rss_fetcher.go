package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"space/internal/models"
	"space/internal/utils"

	"github.com/mmcdole/gofeed"
)

// RSSFetcher 把配置了 RSS 地址的分类转换为内容条目
type RSSFetcher struct {
	parser *gofeed.Parser
}

// NewRSSFetcher 创建 RSS 抓取服务实例
func NewRSSFetcher() *RSSFetcher {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}

	parser := gofeed.NewParser()
	parser.Client = httpClient
	parser.UserAgent = "Space/1.0 (+explore)"

	return &RSSFetcher{
		parser: parser,
	}
}

// normalizeRSSURL rsshub:// 前缀替换为 RSSHub 实例地址
func normalizeRSSURL(rssURL string) string {
	if !strings.HasPrefix(rssURL, "rsshub://") {
		return rssURL
	}
	instance := os.Getenv("RSSHUB_INSTANCE_URL")
	if instance == "" {
		instance = "https://rsshub.app"
	}
	return strings.TrimSuffix(instance, "/") + "/" + strings.TrimPrefix(rssURL, "rsshub://")
}

// FetchItems 拉取订阅源，最多返回 limit 条
func (f *RSSFetcher) FetchItems(ctx context.Context, category, rssURL string, limit int) ([]models.ContentItem, error) {
	feed, err := f.parser.ParseURLWithContext(normalizeRSSURL(rssURL), ctx)
	if err != nil {
		return nil, fmt.Errorf("rss: parse %s: %w", rssURL, err)
	}

	sourceName := feed.Title
	if sourceName == "" {
		sourceName = category
	}

	items := make([]models.ContentItem, 0, limit)
	for i, item := range feed.Items {
		if len(items) >= limit {
			break
		}
		link := item.Link
		if link == "" || strings.TrimSpace(item.Title) == "" {
			continue
		}
		guid := item.GUID
		if guid == "" {
			guid = link
		}

		publishedAt := time.Now()
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}

		description := strings.TrimSpace(item.Description)
		if description == "" {
			description = item.Title
		}

		items = append(items, models.ContentItem{
			ID:          guid,
			Type:        "article",
			Title:       item.Title,
			Description: description,
			ImageURL:    itemImage(item, i),
			Category:    category,
			Source:      models.ContentSource{Name: sourceName, URL: link},
			Timestamp:   utils.TimeAgo(publishedAt),
		})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("rss: %s has no usable items: %w", rssURL, ErrMalformedResponse)
	}
	return items, nil
}

// itemImage 优先取条目图片，其次是图片类附件，最后使用占位图
func itemImage(item *gofeed.Item, i int) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	return fmt.Sprintf("https://picsum.photos/seed/rss-%d/800/600", i)
}
