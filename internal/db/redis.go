package db

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// ConnectRedis 连接失败时返回 nil，调用方退回进程内缓存
func ConnectRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[db] redis connection to %s failed: %v, using in-memory content cache", addr, err)
		client.Close()
		return nil
	}

	log.Printf("[db] connected to redis at %s", addr)
	return client
}
