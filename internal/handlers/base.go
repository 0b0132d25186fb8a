package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"space/internal/middleware"
	"space/internal/models"
	"space/internal/services"
	"space/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondError 把服务层错误映射为状态码，统一 {"error": "..."} 格式
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, utils.ErrCommentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// CommentView 评论的输出结构，附带渲染后的 HTML 和当前用户的点赞状态
type CommentView struct {
	ID          string        `json:"id"`
	Author      models.Author `json:"author"`
	Content     string        `json:"content"`
	ContentHTML template.HTML `json:"content_html"`
	Timestamp   string        `json:"timestamp"`
	CreatedAt   time.Time     `json:"created_at"`
	Likes       int           `json:"likes"`
	Liked       bool          `json:"liked"`
	Replies     []CommentView `json:"replies"`
}

// PostView 帖子的输出结构
type PostView struct {
	*models.Post
	ContentHTML   template.HTML `json:"content_html"`
	VideoEmbedURL string        `json:"video_embed_url,omitempty"`
	Liked         bool          `json:"liked"`
	CommentsList  []CommentView `json:"comments_list"`
}

func viewerID(c *gin.Context) string {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}

func newCommentViews(forest []models.Comment, viewer string) []CommentView {
	views := make([]CommentView, 0, len(forest))
	for i := range forest {
		views = append(views, newCommentView(&forest[i], viewer))
	}
	return views
}

func newCommentView(cm *models.Comment, viewer string) CommentView {
	return CommentView{
		ID:          cm.ID,
		Author:      cm.Author,
		Content:     cm.Content,
		ContentHTML: utils.RenderContent(cm.Content),
		Timestamp:   cm.Timestamp,
		CreatedAt:   cm.CreatedAt,
		Likes:       cm.Likes,
		Liked:       viewer != "" && cm.HasLiked(viewer),
		Replies:     newCommentViews(cm.Replies, viewer),
	}
}

func newPostView(p *models.Post, viewer string) PostView {
	liked := false
	for _, id := range p.LikedBy {
		if id == viewer {
			liked = true
			break
		}
	}
	return PostView{
		Post:          p,
		ContentHTML:   utils.RenderContent(p.Content),
		VideoEmbedURL: utils.VideoEmbedURL(p.VideoURL),
		Liked:         viewer != "" && liked,
		CommentsList:  newCommentViews(p.CommentsList, viewer),
	}
}
