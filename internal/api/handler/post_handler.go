package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

// ListPublished 公开的已发布列表，游标分页
func (s *PostHandler) ListPublished(c *gin.Context) {
	var query dto.PostListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.postSvc.ListPublished(c.Request.Context(), query.PageSize, query.Cursor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PostHandler) ListByTag(c *gin.Context) {
	tag := c.Param("tag")

	posts, err := s.postSvc.ListByTag(c.Request.Context(), tag)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// SearchPosts 公开检索面，无视传入的状态参数，只在已发布文章内匹配
func (s *PostHandler) SearchPosts(c *gin.Context) {
	var query dto.PostSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.SearchByText(c.Request.Context(), query.Q, consts.PostStatusPublished)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// SearchAllPosts 管理端检索，可指定任意状态
func (s *PostHandler) SearchAllPosts(c *gin.Context) {
	var query dto.PostSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.SearchByText(c.Request.Context(), query.Q, query.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GetPublishedPost 公开端点查，命中后异步累加浏览数，失败不影响本次响应
func (s *PostHandler) GetPublishedPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := s.postSvc.GetPublishedPost(c.Request.Context(), slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	s.touchViews(slug)
	response.Success(c, post)
}

// IncrementViews 显式计数端点，供前端静态缓存场景补打
func (s *PostHandler) IncrementViews(c *gin.Context) {
	slug := c.Param("slug")

	if err := s.postSvc.IncrementViews(c.Request.Context(), slug); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.PostCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(),
		c.GetString("author_id"), c.GetString("author_email"), c.GetString("author_name"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	slug := c.Param("slug")

	var req dto.PostUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.UpdatePost(c.Request.Context(), slug, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	slug := c.Param("slug")

	if err := s.postSvc.DeletePost(c.Request.Context(), slug); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetPost 管理端点查，草稿和归档也可见
func (s *PostHandler) GetPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := s.postSvc.GetPost(c.Request.Context(), slug)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// ListAll 管理端全量列表，按更新时间降序
func (s *PostHandler) ListAll(c *gin.Context) {
	var query dto.PostStatusQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.ListAll(c.Request.Context(), query.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// touchViews 脱离请求生命周期执行，请求上下文取消不影响计数
func (s *PostHandler) touchViews(slug string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.postSvc.IncrementViews(ctx, slug)
	}()
}
