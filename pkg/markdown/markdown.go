package markdown

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

var policy = bluemonday.UGCPolicy()

// ToHTML 将 Markdown 内容转换为 HTML 并移除可能的恶意脚本
func ToHTML(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	unsafe := blackfriday.Run([]byte(content), blackfriday.WithExtensions(blackfriday.CommonExtensions))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(unsafe)))
	if err != nil {
		return "", err
	}

	// 先移除脚本标签，再按白名单过滤属性
	doc.Find("script").Remove()
	html, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}

	return policy.Sanitize(html), nil
}

// Excerpt 提取HTML中的纯文本，超过limit个字符时截断
func Excerpt(html string, limit int) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text, nil
	}
	runes := []rune(text)
	return string(runes[:limit]) + "...", nil
}
