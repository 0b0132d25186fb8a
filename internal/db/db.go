package db

import (
	"context"
	"fmt"
	"log"

	"space/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init 连接数据库、迁移表结构并写入演示数据
func Init(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Println("[db] connection established")

	if err := conn.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Println("[db] migration completed")

	seedPosts(conn)
	return conn, nil
}

func seedPosts(conn *gorm.DB) {
	var count int64
	conn.Model(&models.Post{}).Count(&count)
	if count > 0 {
		log.Println("[db] posts already seeded, skipping")
		return
	}

	store := NewPostStore(conn)
	for _, post := range DemoPosts() {
		p := post
		if err := store.CreatePost(context.Background(), &p); err != nil {
			log.Printf("[db] failed to seed post %s: %v", p.ID, err)
		}
	}
	log.Println("[db] demo posts created")
}
