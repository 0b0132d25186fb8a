package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"space/internal/models"
	"space/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CheckUserKey  = "user"
	SessionUserID = "user_id"
)

// UserLoader 按 ID 读取用户
type UserLoader interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// LoadUser 从 session 中取出用户放入上下文，用户已不存在时清掉 session
func LoadUser(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(SessionUserID).(string)

		if ok && userID != "" {
			user, err := users.GetUser(c.Request.Context(), userID)
			switch {
			case err == nil:
				c.Set(CheckUserKey, user)
			case errors.Is(err, services.ErrUserNotFound):
				session.Delete(SessionUserID)
				if err := session.Save(); err != nil {
					log.Printf("[auth] clear session for %s: %v", userID, err)
				}
			default:
				// 存储临时故障不登出，本次请求按未登录处理
				log.Printf("[auth] load user %s: %v", userID, err)
			}
		}
		c.Next()
	}
}

// AuthRequired 未登录返回 401，需在 LoadUser 之后使用
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

// CurrentUser 当前登录用户，未登录返回 nil
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(CheckUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
