package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string // 为空时使用内存存储
	SessionSecret string

	LLMBaseURL string
	LLMToken   string
	LLMModel   string
	LLMRPM     int // 每分钟允许的生成请求数

	ImageSearchBaseURL string
	ImageSearchKey     string

	ContentTTL             time.Duration
	ContentTimeout         time.Duration
	ContentCacheSize       int
	ContentBatchSize       int
	ContentImageCategories []string
	ContentRSSFeeds        map[string]string // category -> RSS URL
	ContentWarmCategories  []string
	ContentWarmInterval    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRatePerSec float64
	APIBurst      int
}

// Load 读取 .env 和环境变量，缺省值与本地开发环境一致
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: getEnv("SESSION_SECRET", "secret_key_change_me"),

		LLMBaseURL: strings.TrimSuffix(getEnv("LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"), "/"),
		LLMToken:   os.Getenv("LLM_TOKEN"),
		LLMModel:   getEnv("LLM_MODEL", "gemini-2.5-flash"),
		LLMRPM:     getInt("LLM_RPM", 15),

		ImageSearchBaseURL: strings.TrimSuffix(getEnv("IMAGE_SEARCH_BASE_URL", "https://api.pexels.com/v1"), "/"),
		ImageSearchKey:     os.Getenv("IMAGE_SEARCH_KEY"),

		ContentTTL:             getDuration("CONTENT_TTL", 5*time.Minute),
		ContentTimeout:         getDuration("CONTENT_TIMEOUT", 12*time.Second),
		ContentCacheSize:       getInt("CONTENT_CACHE_SIZE", 256),
		ContentBatchSize:       getInt("CONTENT_BATCH_SIZE", 12),
		ContentImageCategories: getList("CONTENT_IMAGE_CATEGORIES", []string{"Photography", "Art", "Design", "Nature", "Travel", "Architecture"}),
		ContentRSSFeeds:        ParseFeedMap(os.Getenv("CONTENT_RSS_FEEDS")),
		ContentWarmCategories:  getList("CONTENT_WARM_CATEGORIES", nil),
		ContentWarmInterval:    getDuration("CONTENT_WARM_INTERVAL", 4*time.Minute),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		APIRatePerSec: getFloat("API_RATE_PER_SEC", 10),
		APIBurst:      getInt("API_BURST", 20),
	}
}

// ParseFeedMap 解析 "Tech=https://a/rss;World=rsshub://b" 格式
func ParseFeedMap(s string) map[string]string {
	feeds := make(map[string]string)
	for _, pair := range strings.Split(s, ";") {
		category, url, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		category, url = strings.TrimSpace(category), strings.TrimSpace(url)
		if category != "" && url != "" {
			feeds[category] = url
		}
	}
	return feeds
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return i
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %v", key, v, def)
		return def
	}
	return f
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
