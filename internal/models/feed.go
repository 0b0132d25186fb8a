package models

// FeedSettings 首页信息流的内容类型开关和搜索词
// 开关为 false 表示该类型被关闭
type FeedSettings struct {
	ShowImages bool   `form:"images" json:"show_images"`
	ShowVideos bool   `form:"videos" json:"show_videos"`
	ShowPolls  bool   `form:"polls" json:"show_polls"`
	ShowText   bool   `form:"text" json:"show_text"`
	Search     string `form:"q" json:"search"`
}

// DefaultFeedSettings 所有类型均开启
func DefaultFeedSettings() FeedSettings {
	return FeedSettings{
		ShowImages: true,
		ShowVideos: true,
		ShowPolls:  true,
		ShowText:   true,
	}
}
