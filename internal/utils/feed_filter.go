package utils

import (
	"strings"

	"space/internal/models"
)

// ComputeVisibleFeed 按内容类型开关和搜索词过滤帖子，保持原有顺序，不修改入参
func ComputeVisibleFeed(posts []models.Post, settings models.FeedSettings) []models.Post {
	query := strings.ToLower(settings.Search)

	visible := make([]models.Post, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		if !settings.ShowImages && p.HasImage() {
			continue
		}
		if !settings.ShowVideos && p.HasVideo() {
			continue
		}
		if !settings.ShowPolls && p.HasPoll() {
			continue
		}
		if !settings.ShowText && p.IsTextOnly() {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Content), query) {
			continue
		}
		visible = append(visible, *p)
	}
	return visible
}
