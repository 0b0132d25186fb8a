package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"space/internal/models"
	"space/internal/utils"
)

// PexelsResponse 图片搜索 API 响应结构
type PexelsResponse struct {
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
	Photos  []PexelsPhoto `json:"photos"`
}

type PexelsPhoto struct {
	ID              int64  `json:"id"`
	Alt             string `json:"alt"`
	Photographer    string `json:"photographer"`
	PhotographerURL string `json:"photographer_url"`
	URL             string `json:"url"` // 图片详情页
	Src             struct {
		Original string `json:"original"`
		Large    string `json:"large"`
		Medium   string `json:"medium"`
	} `json:"src"`
}

// ImageSearchService 图片类分类直接查询图片搜索 API，不经过生成式 API
type ImageSearchService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewImageSearchService(baseURL, apiKey string) *ImageSearchService {
	return &ImageSearchService{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SearchImages 按关键词搜索图片并映射为 ContentItem
func (s *ImageSearchService) SearchImages(ctx context.Context, category string, perPage int) ([]models.ContentItem, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("image search: %w", ErrNotConfigured)
	}

	q := url.Values{}
	q.Set("query", category)
	q.Set("per_page", strconv.Itoa(perPage))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("image search: create request: %w", err)
	}
	req.Header.Set("Authorization", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image search: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("image search: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	var result PexelsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("image search: decode response: %w", err)
	}
	if len(result.Photos) == 0 {
		return nil, fmt.Errorf("image search: no photos for %q: %w", category, ErrMalformedResponse)
	}

	items := make([]models.ContentItem, 0, len(result.Photos))
	for i, photo := range result.Photos {
		items = append(items, photoToItem(photo, category, i))
	}
	return items, nil
}

func photoToItem(p PexelsPhoto, category string, i int) models.ContentItem {
	image := p.Src.Large
	if image == "" {
		image = p.Src.Original
	}
	photographer := p.Photographer
	if photographer == "" {
		photographer = "Pexels"
	}
	pageURL := p.URL
	if pageURL == "" {
		pageURL = "https://www.pexels.com"
	}
	title := p.Alt
	if title == "" {
		title = category + " by " + photographer
	}
	// 搜索结果没有互动数据，按序号给出稳定的展示值
	return models.ContentItem{
		ID:            "pexels-" + strconv.FormatInt(p.ID, 10),
		Type:          "image",
		Title:         title,
		Description:   "Photo by " + photographer,
		ImageURL:      image,
		Category:      category,
		Source:        models.ContentSource{Name: photographer, URL: pageURL},
		Likes:         100 + (len(p.Alt)*37+i*53)%900,
		Views:         1000 + (len(p.Alt)*211+i*97)%9000,
		CommentsCount: (len(p.Alt) + i*7) % 60,
		Timestamp:     utils.TimeAgo(time.Now()),
	}
}
