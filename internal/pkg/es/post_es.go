package es

import "time"

// PostES 写入检索索引的文档，正文不含富文本标签以外的冗余字段
type PostES struct {
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Excerpt    string    `json:"excerpt"`
	Status     string    `json:"status"`
	Tags       []string  `json:"tags"`
	Categories []string  `json:"categories"`
	AuthorName string    `json:"author_name"`
	Views      int64     `json:"views"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Sort 命中文档的排序值，翻页游标用，不回写索引
	Sort []interface{} `json:"-"`
}
