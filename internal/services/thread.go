package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"space/internal/models"
	"space/internal/utils"

	"github.com/google/uuid"
)

// ThreadService 是帖子评论森林和 CommentCount 的唯一修改入口，
// 两者总在同一次 UpdatePost 中一起变化
type ThreadService struct {
	posts PostRepository
	now   func() time.Time
}

func NewThreadService(posts PostRepository) *ThreadService {
	return &ThreadService{posts: posts, now: time.Now}
}

// newComment 构造一条没有回复的新评论
func (s *ThreadService) newComment(author models.Author, content string) (models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Comment{}, ErrEmptyContent
	}
	id, err := uuid.NewV7()
	if err != nil {
		return models.Comment{}, fmt.Errorf("generate comment id: %w", err)
	}
	now := s.now()
	return models.Comment{
		ID:        id.String(),
		Author:    author,
		Content:   content,
		Timestamp: utils.DisplayTimestamp(now),
		CreatedAt: now,
		Replies:   []models.Comment{},
	}, nil
}

// AddComment 发表顶层评论
func (s *ThreadService) AddComment(ctx context.Context, postID string, author models.Author, content string) (*models.Comment, error) {
	comment, err := s.newComment(author, content)
	if err != nil {
		return nil, err
	}

	_, err = s.posts.UpdatePost(ctx, postID, func(p *models.Post) error {
		p.CommentsList = utils.AddTopLevelComment(p.CommentsList, comment)
		p.CommentCount++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// AddReply 回复任意层级的评论，父评论不存在时返回 utils.ErrCommentNotFound
func (s *ThreadService) AddReply(ctx context.Context, postID, parentID string, author models.Author, content string) (*models.Comment, error) {
	reply, err := s.newComment(author, content)
	if err != nil {
		return nil, err
	}

	_, err = s.posts.UpdatePost(ctx, postID, func(p *models.Post) error {
		forest, err := utils.AddReply(p.CommentsList, parentID, reply)
		if err != nil {
			return err
		}
		p.CommentsList = forest
		p.CommentCount++
		return nil
	})
	if err != nil {
		log.Printf("[thread] reply to %s on post %s failed: %v", parentID, postID, err)
		return nil, err
	}
	return &reply, nil
}

// ToggleLike 切换用户对评论的点赞，返回最新点赞数和状态
func (s *ThreadService) ToggleLike(ctx context.Context, postID, commentID, userID string) (int, bool, error) {
	var (
		likes int
		liked bool
	)
	_, err := s.posts.UpdatePost(ctx, postID, func(p *models.Post) error {
		forest, on, err := utils.ToggleCommentLike(p.CommentsList, commentID, userID)
		if err != nil {
			return err
		}
		p.CommentsList = forest
		liked = on
		if c, ok := utils.FindComment(forest, commentID); ok {
			likes = c.Likes
		}
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return likes, liked, nil
}

// Comments 返回评论森林和评论数
func (s *ThreadService) Comments(ctx context.Context, postID string) ([]models.Comment, int, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	return post.CommentsList, post.CommentCount, nil
}
