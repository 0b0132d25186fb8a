package utils

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// VideoEmbedURL 把 YouTube / Vimeo 链接转换为可嵌入的播放器地址，无法识别时返回空字符串
func VideoEmbedURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(u.Host, "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case "vimeo.com":
		if id := strings.Trim(u.Path, "/"); id != "" && !strings.Contains(id, "/") {
			return "https://player.vimeo.com/video/" + id
		}
	}
	return ""
}

// EnhanceHTMLContent 为图片补充懒加载等属性，并把独占一段的视频链接替换为嵌入式播放器
func EnhanceHTMLContent(htmlStr string) template.HTML {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return template.HTML(htmlStr)
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("referrerpolicy", "no-referrer")
		s.SetAttr("loading", "lazy")
	})

	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(text, "http") || strings.Contains(text, " ") {
			return
		}
		if embed := VideoEmbedURL(text); embed != "" {
			s.ReplaceWithHtml(`<div class="video-container"><iframe src="` + template.HTMLEscapeString(embed) + `" frameborder="0" allowfullscreen allow="autoplay; encrypted-media; picture-in-picture"></iframe></div>`)
		}
	})

	// goquery 会补全 html/body，这里只取 body 内容
	html, _ := doc.Find("body").Html()
	if html == "" {
		html, _ = doc.Html()
	}

	return template.HTML(html)
}
