package dto

// PostDTO 文章
type PostDTO struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Status        string   `json:"status"`
	AuthorID      string   `json:"author_id"`
	AuthorEmail   string   `json:"author_email,omitempty"`
	AuthorName    string   `json:"author_name,omitempty"`
	Tags          []string `json:"tags"`
	Categories    []string `json:"categories"`
	FeaturedImage string   `json:"featured_image,omitempty"`
	Views         int64    `json:"views"`
	Likes         int64    `json:"likes"`

	// RFC3339，存储端尚未写入时为 null
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

// PostCreateDTO 新建文章。必填项校验在服务层完成，以便一次性报出全部缺失字段。
type PostCreateDTO struct {
	Title         string   `json:"title" validate:"max=255"`
	Content       string   `json:"content"`
	Slug          string   `json:"slug" validate:"max=255"`
	Excerpt       string   `json:"excerpt" validate:"max=1000"`
	Status        string   `json:"status"`
	Tags          []string `json:"tags" validate:"max=20"`
	Categories    []string `json:"categories" validate:"max=20"`
	FeaturedImage string   `json:"featured_image" validate:"max=512"`
}

// PostUpdateDTO 部分更新，nil 表示未提交该字段；切片传 [] 表示清空
type PostUpdateDTO struct {
	Title         *string  `json:"title,omitempty"`
	Slug          *string  `json:"slug,omitempty"`
	Content       *string  `json:"content,omitempty"`
	Excerpt       *string  `json:"excerpt,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	FeaturedImage *string  `json:"featured_image,omitempty"`
}

// PostPageDTO 游标分页结果
type PostPageDTO struct {
	List       []*PostDTO `json:"list"`
	NextCursor string     `json:"next_cursor"`
	HasMore    bool       `json:"has_more"`
}

// PostListQuery 已发布列表查询参数
type PostListQuery struct {
	PageSize int    `form:"page_size"`
	Cursor   string `form:"cursor"`
}

// PostSearchQuery 检索参数
type PostSearchQuery struct {
	Q      string `form:"q" binding:"required"`
	Status string `form:"status"`
}

// PostStatusQuery 管理端列表的状态过滤
type PostStatusQuery struct {
	Status string `form:"status"`
}
