package db

import (
	"context"
	"errors"
	"time"

	"space/internal/models"
	"space/internal/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostStore 帖子的 postgres 存储
type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) CreatePost(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// UpdatePost 行锁内读取最新帖子再修改，评论森林和计数一起写回
func (s *PostStore) UpdatePost(ctx context.Context, id string, fn func(*models.Post) error) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrPostNotFound
			}
			return err
		}
		if err := fn(&post); err != nil {
			return err
		}
		post.UpdatedAt = time.Now()
		return tx.Save(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}
