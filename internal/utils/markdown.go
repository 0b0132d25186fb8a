package utils

import (
	"bytes"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()

	hashtagRe = regexp.MustCompile(`(^|\s)#(\w+)`)
)

func init() {
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// RenderContent 把帖子/评论正文（Markdown）渲染为安全的 HTML
// #话题 会被转换为搜索链接
func RenderContent(source string) template.HTML {
	if source == "" {
		return ""
	}
	source = hashtagRe.ReplaceAllString(source, "$1[#$2](/api/feed?q=%23$2)")

	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source)) // Fallback
	}

	sanitized := policy.SanitizeBytes(buf.Bytes())
	return EnhanceHTMLContent(string(sanitized))
}
