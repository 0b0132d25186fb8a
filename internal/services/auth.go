package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"space/internal/models"
	"space/internal/utils"

	"github.com/google/uuid"
)

type registerInput struct {
	Name     string `validate:"max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// UserUpdate 资料修改，nil 字段保持不变
type UserUpdate struct {
	Name   *string `json:"name" validate:"omitempty,max=50"`
	Avatar *string `json:"avatar" validate:"omitempty,url"`
	Bio    *string `json:"bio" validate:"omitempty,max=200"`
}

type AuthService struct {
	users UserRepository
}

func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register 创建用户，handle 取邮箱前缀，名字为空时同样使用邮箱前缀
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if err := validate.Struct(registerInput{Name: name, Email: email, Password: password}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	handle := utils.HandleFromEmail(email)
	if name == "" {
		name = strings.TrimPrefix(handle, "@")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &models.User{
		ID:        id.String(),
		Name:      name,
		Handle:    handle,
		Email:     email,
		Password:  hash,
		Avatar:    utils.DefaultAvatar(strings.TrimPrefix(handle, "@")),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 邮箱不存在和密码错误返回同一个错误
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

func (s *AuthService) UpdateUser(ctx context.Context, id string, upd UserUpdate) (*models.User, error) {
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		upd.Name = &trimmed
	}
	if err := validate.Struct(upd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Avatar != nil {
		user.Avatar = *upd.Avatar
	}
	if upd.Bio != nil {
		user.Bio = *upd.Bio
	}
	user.UpdatedAt = time.Now()

	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
