package consts

// 文章状态枚举
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// PostStatuses 全部合法状态
var PostStatuses = []string{PostStatusDraft, PostStatusPublished, PostStatusArchived}

// IsValidPostStatus 判断状态枚举值是否合法
func IsValidPostStatus(status string) bool {
	for _, s := range PostStatuses {
		if s == status {
			return true
		}
	}
	return false
}

const (
	// DefaultPageSize 列表接口默认分页大小
	DefaultPageSize = 10
	// MaxPageSize 列表接口最大分页大小
	MaxPageSize = 50

	// ExcerptRuneLimit 自动摘要截取的最大字符数
	ExcerptRuneLimit = 160

	// SlugMaxAttempts slug 冲突时追加数字后缀的最大尝试次数
	SlugMaxAttempts = 100
)
