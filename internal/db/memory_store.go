package db

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"space/internal/models"
	"space/internal/services"
)

// MemoryPostStore 未配置 DATABASE_URL 时使用，也用于测试
type MemoryPostStore struct {
	mu    sync.Mutex
	posts map[string]*models.Post
}

func NewMemoryPostStore(seed ...models.Post) *MemoryPostStore {
	s := &MemoryPostStore{posts: make(map[string]*models.Post)}
	for i := range seed {
		p := clonePost(&seed[i])
		s.posts[p.ID] = p
	}
	return s
}

func (s *MemoryPostStore) CreatePost(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = post.CreatedAt
	}
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *MemoryPostStore) GetPost(_ context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (s *MemoryPostStore) ListPosts(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, *clonePost(p))
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *MemoryPostStore) UpdatePost(_ context.Context, id string, fn func(*models.Post) error) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.posts[id]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	next := clonePost(current)
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now()
	s.posts[id] = next
	return clonePost(next), nil
}

func clonePost(p *models.Post) *models.Post {
	out := *p
	if p.LikedBy != nil {
		out.LikedBy = append([]string(nil), p.LikedBy...)
	}
	if p.Poll != nil {
		poll := *p.Poll
		poll.Options = append([]models.PollOption(nil), p.Poll.Options...)
		out.Poll = &poll
	}
	out.CommentsList = cloneComments(p.CommentsList)
	return &out
}

func cloneComments(forest []models.Comment) []models.Comment {
	if forest == nil {
		return nil
	}
	out := make([]models.Comment, len(forest))
	for i, c := range forest {
		out[i] = c
		if c.LikedBy != nil {
			out[i].LikedBy = append([]string(nil), c.LikedBy...)
		}
		out[i].Replies = cloneComments(c.Replies)
	}
	return out
}

// MemoryUserStore 邮箱不区分大小写
type MemoryUserStore struct {
	mu      sync.Mutex
	users   map[string]models.User
	byEmail map[string]string
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, ok := s.byEmail[email]; ok {
		return services.ErrEmailTaken
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
		user.UpdatedAt = user.CreatedAt
	}
	s.users[user.ID] = *user
	s.byEmail[email] = user.ID
	return nil
}

func (s *MemoryUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *MemoryUserStore) SaveUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.users[user.ID]
	if !ok {
		return services.ErrUserNotFound
	}
	if !strings.EqualFold(old.Email, user.Email) {
		if _, taken := s.byEmail[strings.ToLower(user.Email)]; taken {
			return services.ErrEmailTaken
		}
		delete(s.byEmail, strings.ToLower(old.Email))
		s.byEmail[strings.ToLower(user.Email)] = user.ID
	}
	s.users[user.ID] = *user
	return nil
}
