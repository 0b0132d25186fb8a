package services

import (
	"context"

	"space/internal/models"
)

// PostRepository 帖子存储。UpdatePost 读取最新状态并在锁内执行 fn，fn 返回错误时不落库
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, fn func(*models.Post) error) (*models.Post, error)
}

// UserRepository 用户存储，邮箱重复时 CreateUser 返回 ErrEmailTaken
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
}
