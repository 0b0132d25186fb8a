package handlers

import (
	"log"
	"net/http"

	"space/internal/middleware"
	"space/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func startSession(c *gin.Context, userID string) error {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserID, userID)
	return session.Save()
}

// Register POST /api/auth/register，成功后直接登录
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := startSession(c, user.ID); err != nil {
		log.Printf("[auth] save session for %s: %v", user.ID, err)
	}
	c.JSON(http.StatusCreated, user)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := startSession(c, user.ID); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("[auth] clear session: %v", err)
	}
	c.Status(http.StatusNoContent)
}

// Me GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// UpdateMe PUT /api/me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var upd services.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.auth.UpdateUser(c.Request.Context(), middleware.CurrentUser(c).ID, upd)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
