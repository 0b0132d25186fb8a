package services

import (
	"context"
	"log"
	"strings"
	"time"

	"space/internal/models"
)

// ContentGenerator 生成式内容 API
type ContentGenerator interface {
	GenerateContentItems(ctx context.Context, category string, sources []string, count int) ([]models.ContentItem, error)
}

// ImageSearcher 图片搜索 API
type ImageSearcher interface {
	SearchImages(ctx context.Context, category string, perPage int) ([]models.ContentItem, error)
}

// FeedReader RSS 订阅源
type FeedReader interface {
	FetchItems(ctx context.Context, category, rssURL string, limit int) ([]models.ContentItem, error)
}

type ContentOptions struct {
	Timeout         time.Duration     // 单次外部调用的超时
	BatchSize       int               // 每次请求的条目数
	ImageCategories []string          // 走图片搜索的分类
	RSSFeeds        map[string]string // 走 RSS 的分类
}

// ContentResult 一次拉取的结果，Fallback 表示展示的是预置内容
type ContentResult struct {
	Items    []models.ContentItem `json:"items"`
	Cached   bool                 `json:"cached"`
	Fallback bool                 `json:"fallback"`
	Provider string               `json:"provider"`
}

const (
	ProviderGenerative = "generative"
	ProviderImages     = "images"
	ProviderRSS        = "rss"
	ProviderFallback   = "fallback"
)

// ContentService 探索页内容：缓存 -> 外部 API -> 预置内容
type ContentService struct {
	cache     ContentCache
	generator ContentGenerator
	images    ImageSearcher
	feeds     FeedReader
	opts      ContentOptions
	imageCats map[string]bool
	rssFeeds  map[string]string // 小写分类 -> RSS URL
}

func NewContentService(cache ContentCache, generator ContentGenerator, images ImageSearcher, feeds FeedReader, opts ContentOptions) *ContentService {
	if opts.Timeout <= 0 {
		opts.Timeout = 12 * time.Second
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 12
	}
	imageCats := make(map[string]bool, len(opts.ImageCategories))
	for _, c := range opts.ImageCategories {
		imageCats[strings.ToLower(c)] = true
	}
	rssFeeds := make(map[string]string, len(opts.RSSFeeds))
	for c, url := range opts.RSSFeeds {
		rssFeeds[strings.ToLower(c)] = url
	}
	return &ContentService{
		cache:     cache,
		generator: generator,
		images:    images,
		feeds:     feeds,
		opts:      opts,
		imageCats: imageCats,
		rssFeeds:  rssFeeds,
	}
}

// ContentCacheKey category + "-" + 逗号拼接的来源
func ContentCacheKey(category string, sources []string) string {
	return category + "-" + strings.Join(sources, ",")
}

// FetchItems 返回分类内容，永不报错，永不为空
func (s *ContentService) FetchItems(ctx context.Context, category string, sources []string) []models.ContentItem {
	return s.Fetch(ctx, category, sources).Items
}

// Fetch 同 FetchItems，额外返回是否命中缓存、是否为预置内容
func (s *ContentService) Fetch(ctx context.Context, category string, sources []string) ContentResult {
	key := ContentCacheKey(category, sources)
	if items, ok := s.cache.Get(ctx, key); ok {
		return ContentResult{Items: items, Cached: true, Provider: s.route(category)}
	}
	return s.Refresh(ctx, category, sources)
}

// Refresh 跳过缓存读取，直接请求外部 API，成功后写入缓存
func (s *ContentService) Refresh(ctx context.Context, category string, sources []string) ContentResult {
	provider := s.route(category)

	callCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	items, err := s.call(callCtx, provider, category, sources)
	if err == nil {
		err = validateItems(items)
	}
	if err != nil {
		s.logFailure(provider, category, err)
		return ContentResult{Items: FallbackContent(category), Fallback: true, Provider: ProviderFallback}
	}

	s.cache.Set(ctx, ContentCacheKey(category, sources), items)
	return ContentResult{Items: items, Provider: provider}
}

func (s *ContentService) route(category string) string {
	if s.imageCats[strings.ToLower(category)] {
		return ProviderImages
	}
	if _, ok := s.rssFeeds[strings.ToLower(category)]; ok && s.feeds != nil {
		return ProviderRSS
	}
	return ProviderGenerative
}

func (s *ContentService) call(ctx context.Context, provider, category string, sources []string) ([]models.ContentItem, error) {
	switch provider {
	case ProviderImages:
		if s.images == nil {
			return nil, ErrNotConfigured
		}
		return s.images.SearchImages(ctx, category, s.opts.BatchSize)
	case ProviderRSS:
		return s.feeds.FetchItems(ctx, category, s.rssFeeds[strings.ToLower(category)], s.opts.BatchSize)
	}
	if s.generator == nil {
		return nil, ErrNotConfigured
	}
	return s.generator.GenerateContentItems(ctx, category, sources, s.opts.BatchSize)
}

func validateItems(items []models.ContentItem) error {
	if len(items) == 0 {
		return ErrMalformedResponse
	}
	for i := range items {
		if err := validate.Struct(items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *ContentService) logFailure(provider, category string, err error) {
	kind := ClassifyError(err)
	switch kind {
	case KindQuota, KindTransport, KindMalformed:
		log.Printf("[content] warn: %s provider %s failure for %q, serving fallback: %v", provider, kind, category, err)
	default:
		log.Printf("[content] error: %s provider failed for %q, serving fallback: %v", provider, category, err)
	}
}

// StartScheduledWarmup 定时刷新常用分类，间隔应小于缓存 TTL
func (s *ContentService) StartScheduledWarmup(ctx context.Context, categories []string, interval time.Duration) {
	if len(categories) == 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			for _, category := range categories {
				if res := s.Refresh(ctx, category, nil); res.Fallback {
					log.Printf("[content] warmup for %q served fallback", category)
				}
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
