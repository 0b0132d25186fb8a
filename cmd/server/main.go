package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"space/internal/config"
	"space/internal/db"
	"space/internal/middleware"
	"space/internal/router"
	"space/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 存储：配置了 DATABASE_URL 用 postgres，否则使用内存存储
	var (
		posts services.PostRepository
		users services.UserRepository
	)
	if cfg.DatabaseURL != "" {
		conn, err := db.Init(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		posts = db.NewPostStore(conn)
		users = db.NewUserStore(conn)
	} else {
		log.Println("[db] DATABASE_URL not set, using in-memory store")
		posts = db.NewMemoryPostStore(db.DemoPosts()...)
		users = db.NewMemoryUserStore()
	}

	// 探索内容缓存：优先 Redis，不可用时退回进程内 LRU
	var cache services.ContentCache = services.NewMemoryContentCache(cfg.ContentCacheSize, cfg.ContentTTL)
	if client := db.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); client != nil {
		defer client.Close()
		cache = services.NewRedisContentCache(client, cfg.ContentTTL)
	}

	llm := services.NewLLMService(cfg.LLMBaseURL, cfg.LLMToken, cfg.LLMModel, cfg.LLMRPM)
	if cfg.LLMToken == "" {
		log.Println("[content] LLM_TOKEN not set, generated content will use fallback items")
	}
	content := services.NewContentService(
		cache,
		llm,
		services.NewImageSearchService(cfg.ImageSearchBaseURL, cfg.ImageSearchKey),
		services.NewRSSFetcher(),
		services.ContentOptions{
			Timeout:         cfg.ContentTimeout,
			BatchSize:       cfg.ContentBatchSize,
			ImageCategories: cfg.ContentImageCategories,
			RSSFeeds:        cfg.ContentRSSFeeds,
		},
	)
	content.StartScheduledWarmup(ctx, cfg.ContentWarmCategories, cfg.ContentWarmInterval)

	svc := router.Services{
		Posts:   services.NewPostService(posts, llm),
		Threads: services.NewThreadService(posts),
		Content: content,
		Auth:    services.NewAuthService(users),
	}

	limiter := middleware.NewRateLimiter(cfg.APIRatePerSec, cfg.APIBurst)
	limiter.StartCleanup(ctx.Done())

	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 30 * 24 * 3600, HttpOnly: true})
	r.Use(sessions.Sessions("space_session", store))

	router.RegisterRoutes(r, svc, limiter)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Printf("Space server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
