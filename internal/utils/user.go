package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// DefaultAvatar 根据 handle 生成默认头像地址
func DefaultAvatar(seed string) string {
	if seed == "" {
		seed = fmt.Sprintf("user-%d", rand.Intn(100000))
	}
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}

// HandleFromEmail 从邮箱前缀生成 @handle
func HandleFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local = strings.ToLower(strings.TrimSpace(local))
	if local == "" {
		return ""
	}
	return "@" + local
}

// DisplayTimestamp 评论/帖子创建时写入的展示时间
func DisplayTimestamp(t time.Time) string {
	return t.Format("Jan 2, 2006 15:04")
}

// TimeAgo 相对时间描述
func TimeAgo(t time.Time) string {
	seconds := int(time.Since(t).Seconds())

	switch {
	case seconds < 60:
		return "Just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 2592000:
		return fmt.Sprintf("%dd ago", seconds/86400)
	case seconds < 31536000:
		return fmt.Sprintf("%dmo ago", seconds/2592000)
	}
	return fmt.Sprintf("%dy ago", seconds/31536000)
}
