package services

import (
	"strings"

	"space/internal/models"
)

func fixture(id, typ, title, desc, seed, category, source, sourceURL string, likes, views, comments int, ts string) models.ContentItem {
	return models.ContentItem{
		ID:            id,
		Type:          typ,
		Title:         title,
		Description:   desc,
		ImageURL:      "https://picsum.photos/seed/" + seed + "/800/600",
		Category:      category,
		Source:        models.ContentSource{Name: source, URL: sourceURL},
		Likes:         likes,
		Views:         views,
		CommentsCount: comments,
		Timestamp:     ts,
	}
}

// fallbackItems 外部 API 不可用时展示的预置内容，按分类组织
var fallbackItems = []models.ContentItem{
	fixture("fb-tech-1", "article", "The quiet rise of local-first software", "Why more apps keep your data on device and sync later.", "localfirst", "Tech", "The Verge", "https://www.theverge.com", 1240, 18200, 86, "2h ago"),
	fixture("fb-tech-2", "video", "Building a home lab on a budget", "A walkthrough of a low-power cluster that fits on a shelf.", "homelab", "Tech", "YouTube", "https://www.youtube.com", 980, 40100, 132, "5h ago"),
	fixture("fb-tech-3", "discussion", "What's your favorite terminal setup?", "Share your dotfiles, fonts and prompt tweaks.", "terminal", "Tech", "Space Community", "https://space.example.com", 312, 5400, 201, "1d ago"),
	fixture("fb-science-1", "article", "Webb spots water vapor around a young star", "New spectra hint at how rocky planets get their oceans.", "webb", "Science", "NASA", "https://www.nasa.gov", 2210, 30500, 97, "3h ago"),
	fixture("fb-science-2", "article", "Inside the race for room-temperature batteries", "Solid-state cells are getting closer to the road.", "battery", "Science", "Nature", "https://www.nature.com", 870, 12600, 44, "8h ago"),
	fixture("fb-music-1", "video", "Live session: lo-fi beats from a tiny studio", "An hour of analog warmth recorded in one take.", "lofi", "Music", "SoundCloud", "https://soundcloud.com", 1530, 22000, 75, "6h ago"),
	fixture("fb-music-2", "article", "Vinyl sales climb for the 18th straight year", "Collectors and new listeners keep records spinning.", "vinyl", "Music", "Pitchfork", "https://pitchfork.com", 640, 9100, 38, "1d ago"),
	fixture("fb-gaming-1", "video", "Speedrunners break a 20-year-old record", "Frame-perfect tricks and a community that never gave up.", "speedrun", "Gaming", "Twitch", "https://www.twitch.tv", 3020, 61000, 410, "4h ago"),
	fixture("fb-gaming-2", "discussion", "Indie games that deserve more love", "Drop the hidden gems you've played this year.", "indie", "Gaming", "Space Community", "https://space.example.com", 455, 7300, 260, "12h ago"),
	fixture("fb-photo-1", "image", "Golden hour over the dunes", "Long shadows and soft light in the desert.", "dunes", "Photography", "Unsplash", "https://unsplash.com", 1880, 15400, 52, "7h ago"),
	fixture("fb-photo-2", "image", "Rain-soaked neon streets", "A night walk through the city after a storm.", "neon", "Photography", "Unsplash", "https://unsplash.com", 2140, 19800, 64, "9h ago"),
	fixture("fb-art-1", "image", "Paper sculptures that look like glass", "An artist folds light into delicate forms.", "paperart", "Art", "Behance", "https://www.behance.net", 990, 8800, 29, "1d ago"),
	fixture("fb-travel-1", "image", "A slow train through the Alps", "Seven hours, four countries, endless windows.", "alps", "Travel", "Lonely Planet", "https://www.lonelyplanet.com", 1420, 16700, 58, "2d ago"),
	fixture("fb-nature-1", "image", "Foxes of the northern forest", "A season spent following a single family.", "fox", "Nature", "National Geographic", "https://www.nationalgeographic.com", 2600, 28400, 91, "1d ago"),
}

// genericFallback 分类没有预置内容时使用，会改写为请求的分类
var genericFallback = []models.ContentItem{
	fixture("fb-generic-1", "article", "Trending on Space today", "A roundup of what people are talking about right now.", "trending", "General", "Space", "https://space.example.com", 500, 8000, 40, "1h ago"),
	fixture("fb-generic-2", "discussion", "Ask the community anything", "Open thread: questions, ideas and recommendations.", "community", "General", "Space Community", "https://space.example.com", 320, 4100, 150, "3h ago"),
	fixture("fb-generic-3", "image", "Photo of the day", "Hand-picked by the editors.", "photoday", "General", "Space", "https://space.example.com", 760, 9900, 22, "5h ago"),
	fixture("fb-generic-4", "video", "Creator spotlight", "Meet the people making the things you love.", "creator", "General", "Space", "https://space.example.com", 410, 6200, 31, "8h ago"),
}

// FallbackContent 返回分类对应的预置内容，保证非空，返回新切片
func FallbackContent(category string) []models.ContentItem {
	var items []models.ContentItem
	for _, item := range fallbackItems {
		if strings.EqualFold(item.Category, category) {
			items = append(items, item)
		}
	}
	if len(items) > 0 {
		return items
	}

	items = make([]models.ContentItem, len(genericFallback))
	copy(items, genericFallback)
	if category != "" {
		for i := range items {
			items[i].Category = category
		}
	}
	return items
}
