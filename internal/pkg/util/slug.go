package util

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyTitle 标题为空或全为空白字符
	ErrEmptyTitle = errors.New("标题不能为空")

	slugPattern    = regexp.MustCompile(`^[a-z0-9-]+$`)
	invalidRunes   = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRuns = regexp.MustCompile(`[\s_]+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
)

// GenerateSlug 由标题生成 URL 安全的标识符。
// 小写、去首尾空白、移除特殊字符、空白与下划线折叠为连字符。
func GenerateSlug(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}

	slug := strings.ToLower(trimmed)
	slug = invalidRunes.ReplaceAllString(slug, "")
	slug = whitespaceRuns.ReplaceAllString(slug, "-")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	// 纯符号标题会被过滤成空串
	if slug == "" {
		return "", ErrEmptyTitle
	}
	return slug, nil
}

// IsValidSlug 校验调用方显式传入的 slug
func IsValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}
