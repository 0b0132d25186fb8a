package db

import (
	"context"
	"errors"

	"space/internal/models"
	"space/internal/services"

	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return services.ErrEmailTaken
	}
	return err
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *UserStore) SaveUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *UserStore) first(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
