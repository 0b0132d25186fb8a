package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"space/internal/models"

	"golang.org/x/time/rate"
)

// ChatMessage OpenAI 兼容的对话消息
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// ChatRequest chat/completions 请求体
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

// ChatResponse chat/completions 响应体（只取用到的字段）
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMService 生成式内容 API 客户端，走 OpenAI 兼容协议（Gemini 也提供该入口）
type LLMService struct {
	baseURL string
	token   string
	model   string
	client  *http.Client
	limiter *rate.Limiter
}

// NewLLMService rpm 为每分钟允许的请求数，<=0 表示不限制
func NewLLMService(baseURL, token, model string, rpm int) *LLMService {
	limit := rate.Inf
	burst := 1
	if rpm > 0 {
		limit = rate.Every(time.Minute / time.Duration(rpm))
		burst = rpm
	}
	return &LLMService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// chat 发送一次对话请求，返回第一条回复内容
func (s *LLMService) chat(ctx context.Context, messages []ChatMessage, jsonMode bool) (string, error) {
	if s.token == "" {
		return "", fmt.Errorf("llm: %w", ErrNotConfigured)
	}
	// 本地配额保护，被拒绝时不发起网络请求
	if !s.limiter.Allow() {
		return "", fmt.Errorf("llm: local limiter: %w", ErrQuotaExceeded)
	}

	reqBody := ChatRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0.8,
	}
	if jsonMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("llm: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", parseAPIError(resp.StatusCode, body)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("llm: empty choices: %w", ErrMalformedResponse)
	}
	return chatResp.Choices[0].Message.Content, nil
}

// parseAPIError 兼容 {"error":{...}} 和 [{"error":{...}}] 两种错误体
func parseAPIError(status int, body []byte) *APIError {
	type errBody struct {
		Error struct {
			Message string          `json:"message"`
			Status  string          `json:"status"`
			Code    json.RawMessage `json:"code"`
		} `json:"error"`
	}

	apiErr := &APIError{StatusCode: status}
	var single errBody
	var list []errBody
	switch {
	case json.Unmarshal(body, &single) == nil && single.Error.Message != "":
	case json.Unmarshal(body, &list) == nil && len(list) > 0:
		single = list[0]
	default:
		msg := strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		apiErr.Message = msg
		return apiErr
	}

	apiErr.Message = single.Error.Message
	apiErr.Code = single.Error.Status
	if apiErr.Code == "" && len(single.Error.Code) > 0 {
		apiErr.Code = strings.Trim(string(single.Error.Code), `"`)
	}
	return apiErr
}

// stripCodeFence 去掉模型有时包裹在 JSON 外面的 ``` 代码块
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

const contentSystemPrompt = `You generate realistic social content cards for an explore page.
Respond with a JSON object {"items": [...]} and nothing else.
Each item has: id (string), type ("article"|"video"|"image"|"discussion"), title, description,
imageUrl (https://picsum.photos/seed/<unique-slug>/800/600), category, source {name, url},
likes (int), views (int), commentsCount (int), timestamp (like "2h ago").`

// GenerateContentItems 请求生成 count 条指定分类的内容，可偏向给定来源
func (s *LLMService) GenerateContentItems(ctx context.Context, category string, sources []string, count int) ([]models.ContentItem, error) {
	prompt := fmt.Sprintf("Generate %d trending items for the category %q.", count, category)
	if len(sources) > 0 {
		prompt += fmt.Sprintf(" Prefer these sources: %s.", strings.Join(sources, ", "))
	}

	content, err := s.chat(ctx, []ChatMessage{
		{Role: "system", Content: contentSystemPrompt},
		{Role: "user", Content: prompt},
	}, true)
	if err != nil {
		return nil, err
	}
	return parseContentItems(content)
}

// generatedItem 计数字段用指针区分"缺失"和"为 0"，缺失即视为格式错误
type generatedItem struct {
	models.ContentItem
	Likes         *int `json:"likes" validate:"required,gte=0"`
	Views         *int `json:"views" validate:"required,gte=0"`
	CommentsCount *int `json:"commentsCount" validate:"required,gte=0"`
}

// parseContentItems 解析 {"items": [...]} 或裸数组，并校验每个字段
func parseContentItems(content string) ([]models.ContentItem, error) {
	raw := []byte(stripCodeFence(content))

	var generated []generatedItem
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		if err := json.Unmarshal(raw, &generated); err != nil {
			return nil, fmt.Errorf("llm: decode items: %w", err)
		}
	} else {
		var wrapper struct {
			Items []generatedItem `json:"items"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("llm: decode items: %w", err)
		}
		generated = wrapper.Items
	}

	if len(generated) == 0 {
		return nil, fmt.Errorf("llm: no items: %w", ErrMalformedResponse)
	}
	items := make([]models.ContentItem, len(generated))
	for i, g := range generated {
		if err := validate.Struct(g); err != nil {
			return nil, fmt.Errorf("llm: item %d: %w: %v", i, ErrMalformedResponse, err)
		}
		item := g.ContentItem
		item.Likes, item.Views, item.CommentsCount = *g.Likes, *g.Views, *g.CommentsCount
		items[i] = item
	}
	return items, nil
}

// GenerateSummary 为帖子生成一句话摘要
func (s *LLMService) GenerateSummary(ctx context.Context, title, content string) (string, error) {
	summary, err := s.chat(ctx, []ChatMessage{
		{Role: "system", Content: "Summarize the user's post in one friendly sentence. Reply with the sentence only."},
		{Role: "user", Content: strings.TrimSpace(title + "\n\n" + content)},
	}, false)
	if err != nil {
		return "", err
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("llm: empty summary: %w", ErrMalformedResponse)
	}
	return "[AI Summary] " + summary, nil
}
