package util

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// 剥标签时补一个空格，块级边界不会把相邻词粘在一起
	stripPolicy    = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)
	sanitizePolicy = bluemonday.UGCPolicy()
)

// SanitizeContent 过滤富文本正文中的危险标签与脚本
func SanitizeContent(content string) string {
	return sanitizePolicy.Sanitize(content)
}

// DeriveExcerpt 从正文提取纯文本前缀作为摘要。
// 去掉全部 HTML 标签后折叠空白，按字符数截断。
func DeriveExcerpt(content string, limit int) string {
	plain := html.UnescapeString(stripPolicy.Sanitize(content))
	plain = strings.Join(strings.Fields(plain), " ")

	runes := []rune(plain)
	if limit > 0 && len(runes) > limit {
		return string(runes[:limit])
	}
	return plain
}
