package router

import (
	"space/internal/handlers"
	"space/internal/middleware"
	"space/internal/services"

	"github.com/gin-gonic/gin"
)

// Services 路由需要的服务集合
type Services struct {
	Posts   *services.PostService
	Threads *services.ThreadService
	Content *services.ContentService
	Auth    *services.AuthService
}

// RegisterRoutes 注册 /api 下的全部路由，limiter 为 nil 时不限流
func RegisterRoutes(r *gin.Engine, svc Services, limiter *middleware.RateLimiter) {
	postHandler := handlers.NewPostHandler(svc.Posts)
	commentHandler := handlers.NewCommentHandler(svc.Threads)
	exploreHandler := handlers.NewExploreHandler(svc.Content)
	authHandler := handlers.NewAuthHandler(svc.Auth)

	api := r.Group("/api")
	if limiter != nil {
		api.Use(limiter.Middleware())
	}
	api.Use(middleware.LoadUser(svc.Auth))

	// 公共路由
	api.GET("/feed", postHandler.Feed)                  // 首页信息流
	api.GET("/posts/:id", postHandler.Detail)           // 帖子详情
	api.GET("/posts/:id/summary", postHandler.Summary)  // 帖子摘要
	api.GET("/posts/:id/comments", commentHandler.List) // 评论树
	api.GET("/explore", exploreHandler.Explore)         // 探索页内容

	api.POST("/auth/register", authHandler.Register) // 注册
	api.POST("/auth/login", authHandler.Login)       // 登录
	api.POST("/auth/logout", authHandler.Logout)     // 退出登录

	// 受保护路由
	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/posts", postHandler.Create)                             // 发帖
		authorized.POST("/posts/:id/like", postHandler.Like)                      // 帖子点赞/取消
		authorized.POST("/posts/:id/comments", commentHandler.Create)             // 顶层评论
		authorized.POST("/posts/:id/comments/:cid/replies", commentHandler.Reply) // 回复任意层级评论
		authorized.POST("/posts/:id/comments/:cid/like", commentHandler.Like)     // 评论点赞/取消
		authorized.GET("/me", authHandler.Me)                                     // 当前用户
		authorized.PUT("/me", authHandler.UpdateMe)                               // 修改资料
	}
}
