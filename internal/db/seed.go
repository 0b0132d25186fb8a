package db

import (
	"time"

	"space/internal/models"
	"space/internal/utils"
)

func demoAuthor(id, name, handle string) models.Author {
	return models.Author{
		ID:     id,
		Name:   name,
		Handle: handle,
		Avatar: utils.DefaultAvatar(handle[1:]),
	}
}

func demoComment(id string, author models.Author, content string, at time.Time, likes int, replies ...models.Comment) models.Comment {
	if replies == nil {
		replies = []models.Comment{}
	}
	return models.Comment{
		ID:        id,
		Author:    author,
		Content:   content,
		Timestamp: utils.DisplayTimestamp(at),
		CreatedAt: at,
		Likes:     likes,
		Replies:   replies,
	}
}

// DemoPosts 首次启动时写入的演示帖子，覆盖图片/视频/投票/纯文本/直播几种类型
func DemoPosts() []models.Post {
	now := time.Now()
	ava := demoAuthor("demo-ava", "Ava Chen", "@ava")
	leo := demoAuthor("demo-leo", "Leo Park", "@leo")
	mia := demoAuthor("demo-mia", "Mia Rossi", "@mia")

	sunsetComments := []models.Comment{
		demoComment("demo-c1", leo, "That light is unreal. Which lens?", now.Add(-50*time.Minute), 4,
			demoComment("demo-c2", ava, "35mm, handheld. No edits besides crop.", now.Add(-45*time.Minute), 2,
				demoComment("demo-c3", leo, "Respect. #nofilter", now.Add(-40*time.Minute), 1),
			),
		),
		demoComment("demo-c4", mia, "Saving this as my wallpaper.", now.Add(-30*time.Minute), 3),
	}

	posts := []models.Post{
		{
			ID:           "demo-post-1",
			AuthorID:     ava.ID,
			Author:       ava,
			Content:      "Caught the last ten minutes of golden hour on the pier. #photography",
			ImageURL:     "https://picsum.photos/seed/pier/1200/800",
			Likes:        42,
			CommentsList: sunsetComments,
			CommentCount: utils.CountComments(sunsetComments),
			CreatedAt:    now.Add(-1 * time.Hour),
		},
		{
			ID:           "demo-post-2",
			AuthorID:     leo.ID,
			Author:       leo,
			Content:      "Quick walkthrough of my **home lab** rebuild.",
			VideoURL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Likes:        17,
			CommentsList: []models.Comment{},
			CreatedAt:    now.Add(-3 * time.Hour),
		},
		{
			ID:       "demo-post-3",
			AuthorID: mia.ID,
			Author:   mia,
			Content:  "Settle this for us.",
			Poll: &models.Poll{
				Question: "Tabs or spaces?",
				Options: []models.PollOption{
					{Text: "Tabs", Votes: 31},
					{Text: "Spaces", Votes: 28},
				},
			},
			Likes:        9,
			CommentsList: []models.Comment{},
			CreatedAt:    now.Add(-5 * time.Hour),
		},
		{
			ID:           "demo-post-4",
			AuthorID:     ava.ID,
			Author:       ava,
			Content:      "Reading list for the weekend: local-first software, CRDTs, and one novel I keep putting off.",
			Likes:        5,
			CommentsList: []models.Comment{},
			CreatedAt:    now.Add(-8 * time.Hour),
		},
		{
			ID:           "demo-post-5",
			AuthorID:     leo.ID,
			Author:       leo,
			Content:      "Going live with a late-night coding session. Come say hi!",
			IsLive:       true,
			Likes:        21,
			CommentsList: []models.Comment{},
			CreatedAt:    now.Add(-10 * time.Minute),
		},
	}
	for i := range posts {
		posts[i].UpdatedAt = posts[i].CreatedAt
	}
	return posts
}
