package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 按客户端 IP 限流，登录注册接口单独收紧
type RateLimiter struct {
	mu             sync.Mutex
	visitors       map[string]*visitor
	defaultLimit   endpointLimit
	endpointLimits map[string]endpointLimit
	idleTTL        time.Duration
}

func NewRateLimiter(perSec float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(perSec)
	if perSec <= 0 {
		limit = rate.Inf
	}
	return &RateLimiter{
		visitors:     make(map[string]*visitor),
		defaultLimit: endpointLimit{limit: limit, burst: burst},
		endpointLimits: map[string]endpointLimit{
			"/api/auth/login":    {limit: rate.Every(2 * time.Second), burst: 5},
			"/api/auth/register": {limit: rate.Every(time.Second), burst: 5},
		},
		idleTTL: 10 * time.Minute,
	}
}

func (r *RateLimiter) get(key string, l endpointLimit) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		r.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Cleanup 清理长时间未访问的客户端
func (r *RateLimiter) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-r.idleTTL)
	for key, v := range r.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(r.visitors, key)
		}
	}
}

// StartCleanup 定时执行 Cleanup，stop 关闭后退出
func (r *RateLimiter) StartCleanup(stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				r.Cleanup()
			}
		}
	}()
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		path := c.FullPath()

		key, l := ip, r.defaultLimit
		if el, ok := r.endpointLimits[path]; ok {
			key, l = ip+"|"+path, el
		}

		if !r.get(key, l).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
