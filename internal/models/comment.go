package models

import (
	"time"
)

// Author 作者信息的只读副本，帖子和评论各自持有一份，不回写用户表
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
	Avatar string `json:"avatar"`
}

// Comment 评论树节点，Replies 按插入顺序排列（最早的回复在前）
type Comment struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	Timestamp string    `json:"timestamp"` // 展示用时间字符串，创建时写入
	CreatedAt time.Time `json:"created_at"`
	Likes     int       `json:"likes"`
	LikedBy   []string  `json:"liked_by,omitempty"` // 当前点赞的用户 ID
	Replies   []Comment `json:"replies"`
}

// HasLiked 判断用户是否已点赞该评论
func (c *Comment) HasLiked(userID string) bool {
	for _, id := range c.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
