package mongo

import (
	"time"
)

// Post 文章文档模型。slug 即文档主键，全库唯一。
type Post struct {
	Slug          string    `bson:"_id" json:"slug"`
	Title         string    `bson:"title" json:"title"`
	Content       string    `bson:"content" json:"content"`
	Excerpt       string    `bson:"excerpt,omitempty" json:"excerpt"`                // 为空时展示层回退到正文纯文本前缀
	Status        string    `bson:"status" json:"status"`                           // draft / published / archived
	AuthorID      string    `bson:"author_id" json:"author_id"`
	AuthorEmail   string    `bson:"author_email,omitempty" json:"author_email"`
	AuthorName    string    `bson:"author_name,omitempty" json:"author_name"`
	Tags          []string  `bson:"tags,omitempty" json:"tags"`                     // 保留插入顺序
	Categories    []string  `bson:"categories,omitempty" json:"categories"`
	FeaturedImage string    `bson:"featured_image,omitempty" json:"featured_image"`
	Views         int64     `bson:"views" json:"views"`
	Likes         int64     `bson:"likes" json:"likes"`
	CreatedAt     time.Time `bson:"created_at,omitempty" json:"created_at"`         // 服务端时钟写入
	UpdatedAt     time.Time `bson:"updated_at,omitempty" json:"updated_at"`
}

// PageCursor 已发布列表的翻页位置，(created_at, slug) 双键定序
type PageCursor struct {
	CreatedAt time.Time
	Slug      string
}

// SlugRepair 改名操作中旧文档删除失败后登记的修复任务
type SlugRepair struct {
	OldSlug   string    `bson:"_id" json:"old_slug"`
	NewSlug   string    `bson:"new_slug" json:"new_slug"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
