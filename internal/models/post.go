package models

import (
	"time"
)

type PollOption struct {
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type Poll struct {
	Question string       `json:"question"`
	Options  []PollOption `json:"options"`
}

type Post struct {
	ID       string   `gorm:"primaryKey;size:36" json:"id"`
	AuthorID string   `gorm:"size:36;index" json:"author_id"`
	Author   Author   `gorm:"serializer:json;type:jsonb" json:"author"`
	Content  string   `gorm:"type:text" json:"content"`
	ImageURL string   `json:"image_url,omitempty"`
	VideoURL string   `json:"video_url,omitempty"`
	Poll     *Poll    `gorm:"serializer:json;type:jsonb" json:"poll,omitempty"`
	IsLive   bool     `gorm:"default:false" json:"is_live"`
	Likes    int      `gorm:"default:0" json:"likes"`
	LikedBy  []string `gorm:"serializer:json;type:jsonb" json:"-"`

	// 评论森林随帖子整体存储，CommentCount 只能与森林在同一次状态变更中修改
	CommentsList []Comment `gorm:"serializer:json;type:jsonb" json:"comments_list"`
	CommentCount int       `gorm:"default:0" json:"comment_count"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasImage / HasVideo / HasPoll 供信息流过滤使用
func (p *Post) HasImage() bool { return p.ImageURL != "" }
func (p *Post) HasVideo() bool { return p.VideoURL != "" }
func (p *Post) HasPoll() bool  { return p.Poll != nil }

// IsTextOnly 无图片、无视频、无投票且不是直播帖
func (p *Post) IsTextOnly() bool {
	return !p.HasImage() && !p.HasVideo() && !p.HasPoll() && !p.IsLive
}
