package models

// ContentSource 内容来源
type ContentSource struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required"`
}

// ContentItem 探索页内容条目，由生成式 API、图片搜索或 RSS 产出，所有字段均为必填
type ContentItem struct {
	ID            string        `json:"id" validate:"required"`
	Type          string        `json:"type" validate:"required"`
	Title         string        `json:"title" validate:"required"`
	Description   string        `json:"description" validate:"required"`
	ImageURL      string        `json:"imageUrl" validate:"required"`
	Category      string        `json:"category" validate:"required"`
	Source        ContentSource `json:"source"`
	Likes         int           `json:"likes" validate:"gte=0"`
	Views         int           `json:"views" validate:"gte=0"`
	CommentsCount int           `json:"commentsCount" validate:"gte=0"`
	Timestamp     string        `json:"timestamp" validate:"required"`
}
