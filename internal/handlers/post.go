package handlers

import (
	"log"
	"net/http"

	"space/internal/middleware"
	"space/internal/models"
	"space/internal/services"
	"space/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Feed GET /api/feed?q=&images=&videos=&polls=&text=
func (h *PostHandler) Feed(c *gin.Context) {
	def := models.DefaultFeedSettings()
	settings := models.FeedSettings{
		ShowImages: utils.ParseToggle(c.Query("images"), def.ShowImages),
		ShowVideos: utils.ParseToggle(c.Query("videos"), def.ShowVideos),
		ShowPolls:  utils.ParseToggle(c.Query("polls"), def.ShowPolls),
		ShowText:   utils.ParseToggle(c.Query("text"), def.ShowText),
		Search:     c.Query("q"),
	}

	posts, err := h.posts.Feed(c.Request.Context(), settings)
	if err != nil {
		RespondError(c, err)
		return
	}

	viewer := viewerID(c)
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, newPostView(&posts[i], viewer))
	}
	c.JSON(http.StatusOK, gin.H{"posts": views, "settings": settings})
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var in services.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user := middleware.CurrentUser(c)
	post, err := h.posts.CreatePost(c.Request.Context(), user.AsAuthor(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newPostView(post, user.ID))
}

// Detail GET /api/posts/:id
func (h *PostHandler) Detail(c *gin.Context) {
	post, err := h.posts.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostView(post, viewerID(c)))
}

// Like POST /api/posts/:id/like，再次请求取消点赞
func (h *PostHandler) Like(c *gin.Context) {
	user := middleware.CurrentUser(c)
	likes, liked, err := h.posts.ToggleLike(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes, "liked": liked})
}

// Summary GET /api/posts/:id/summary
func (h *PostHandler) Summary(c *gin.Context) {
	summary, err := h.posts.Summarize(c.Request.Context(), c.Param("id"))
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"summary": summary})
		return
	}

	switch services.ClassifyError(err) {
	case services.KindQuota:
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "summary quota exceeded, try again later"})
	case services.KindTransport, services.KindMalformed:
		log.Printf("[http] summary for %s unavailable: %v", c.Param("id"), err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "summary unavailable"})
	default:
		RespondError(c, err)
	}
}
