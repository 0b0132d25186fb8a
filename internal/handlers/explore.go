package handlers

import (
	"net/http"
	"strings"

	"space/internal/services"
	"space/internal/utils"

	"github.com/gin-gonic/gin"
)

type ExploreHandler struct {
	content *services.ContentService
}

func NewExploreHandler(content *services.ContentService) *ExploreHandler {
	return &ExploreHandler{content: content}
}

// Explore GET /api/explore?category=&sources=a,b，永远返回 200 和非空列表
func (h *ExploreHandler) Explore(c *gin.Context) {
	category := strings.TrimSpace(c.DefaultQuery("category", "Tech"))
	if category == "" {
		category = "Tech"
	}
	sources := utils.SplitList(c.Query("sources"))

	res := h.content.Fetch(c.Request.Context(), category, sources)
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"items":    res.Items,
		"cached":   res.Cached,
		"fallback": res.Fallback,
	})
}
