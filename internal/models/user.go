package models

import (
	"time"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Handle    string    `gorm:"index;not null" json:"handle"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	Avatar    string    `json:"avatar"`
	Bio       string    `gorm:"size:200" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AsAuthor 生成挂在帖子/评论上的作者副本
func (u *User) AsAuthor() Author {
	return Author{
		ID:     u.ID,
		Name:   u.Name,
		Handle: u.Handle,
		Avatar: u.Avatar,
	}
}
