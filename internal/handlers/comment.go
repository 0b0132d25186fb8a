package handlers

import (
	"net/http"

	"space/internal/middleware"
	"space/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	threads *services.ThreadService
}

func NewCommentHandler(threads *services.ThreadService) *CommentHandler {
	return &CommentHandler{threads: threads}
}

type commentRequest struct {
	Content string `json:"content"`
}

// List GET /api/posts/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	forest, count, err := h.threads.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comments":      newCommentViews(forest, viewerID(c)),
		"comment_count": count,
	})
}

// Create POST /api/posts/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user := middleware.CurrentUser(c)
	comment, err := h.threads.AddComment(c.Request.Context(), c.Param("id"), user.AsAuthor(), req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentView(comment, user.ID))
}

// Reply POST /api/posts/:id/comments/:cid/replies，父评论不存在返回 404
func (h *CommentHandler) Reply(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user := middleware.CurrentUser(c)
	reply, err := h.threads.AddReply(c.Request.Context(), c.Param("id"), c.Param("cid"), user.AsAuthor(), req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentView(reply, user.ID))
}

// Like POST /api/posts/:id/comments/:cid/like
func (h *CommentHandler) Like(c *gin.Context) {
	user := middleware.CurrentUser(c)
	likes, liked, err := h.threads.ToggleLike(c.Request.Context(), c.Param("id"), c.Param("cid"), user.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes, "liked": liked})
}
