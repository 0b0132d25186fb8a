package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"space/internal/models"
	"space/internal/utils"

	"github.com/google/uuid"
)

// PostInput 发帖参数，图片/视频/投票均可选
type PostInput struct {
	Content  string       `json:"content"`
	ImageURL string       `json:"image_url" validate:"omitempty,url"`
	VideoURL string       `json:"video_url" validate:"omitempty,url"`
	Poll     *models.Poll `json:"poll"`
	IsLive   bool         `json:"is_live"`
}

// Summarizer 帖子摘要，nil 表示未配置
type Summarizer interface {
	GenerateSummary(ctx context.Context, title, content string) (string, error)
}

type PostService struct {
	posts      PostRepository
	summarizer Summarizer
}

func NewPostService(posts PostRepository, summarizer Summarizer) *PostService {
	return &PostService{posts: posts, summarizer: summarizer}
}

func (s *PostService) CreatePost(ctx context.Context, author models.Author, in PostInput) (*models.Post, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" && in.ImageURL == "" && in.VideoURL == "" && in.Poll == nil && !in.IsLive {
		return nil, ErrEmptyContent
	}
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.Poll != nil && (strings.TrimSpace(in.Poll.Question) == "" || len(in.Poll.Options) < 2) {
		return nil, fmt.Errorf("%w: poll needs a question and at least two options", ErrInvalidInput)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate post id: %w", err)
	}
	now := time.Now()
	post := &models.Post{
		ID:           id.String(),
		AuthorID:     author.ID,
		Author:       author,
		Content:      in.Content,
		ImageURL:     in.ImageURL,
		VideoURL:     in.VideoURL,
		Poll:         in.Poll,
		IsLive:       in.IsLive,
		CommentsList: []models.Comment{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.GetPost(ctx, id)
}

// ListPosts 最新的在前
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.posts.ListPosts(ctx)
}

// Feed 首页信息流：按设置过滤，顺序与 ListPosts 一致
func (s *PostService) Feed(ctx context.Context, settings models.FeedSettings) ([]models.Post, error) {
	posts, err := s.posts.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	return utils.ComputeVisibleFeed(posts, settings), nil
}

// ToggleLike 切换帖子点赞
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (int, bool, error) {
	var liked bool
	post, err := s.posts.UpdatePost(ctx, postID, func(p *models.Post) error {
		likedBy := make([]string, 0, len(p.LikedBy)+1)
		for _, id := range p.LikedBy {
			if id != userID {
				likedBy = append(likedBy, id)
			}
		}
		if len(likedBy) == len(p.LikedBy) {
			likedBy = append(likedBy, userID)
			p.Likes++
			liked = true
		} else {
			p.Likes--
		}
		p.LikedBy = likedBy
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return post.Likes, liked, nil
}

// Summarize 生成帖子摘要，失败时返回错误由调用方决定如何展示
func (s *PostService) Summarize(ctx context.Context, postID string) (string, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return "", err
	}
	if s.summarizer == nil {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(post.Content) == "" {
		return "", ErrEmptyContent
	}
	return s.summarizer.GenerateSummary(ctx, "Post by "+post.Author.Name, post.Content)
}
