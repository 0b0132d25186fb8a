package services

import (
	"context"
	"strings"
	"sync"

	"space/internal/models"
)

// memPosts 测试用帖子仓库，UpdatePost 在 fn 出错时不落库
type memPosts struct {
	mu    sync.Mutex
	posts map[string]models.Post
	order []string
}

func newMemPosts(posts ...models.Post) *memPosts {
	r := &memPosts{posts: make(map[string]models.Post)}
	for _, p := range posts {
		r.posts[p.ID] = p
		r.order = append([]string{p.ID}, r.order...)
	}
	return r
}

func (r *memPosts) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[post.ID] = *post
	r.order = append([]string{post.ID}, r.order...)
	return nil
}

func (r *memPosts) GetPost(_ context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	return &p, nil
}

func (r *memPosts) ListPosts(_ context.Context) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Post, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.posts[id])
	}
	return out, nil
}

func (r *memPosts) UpdatePost(_ context.Context, id string, fn func(*models.Post) error) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	if err := fn(&p); err != nil {
		return nil, err
	}
	r.posts[id] = p
	return &p, nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]models.User)}
}

func (r *memUsers) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrEmailTaken
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (r *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memUsers) SaveUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	r.users[user.ID] = *user
	return nil
}
