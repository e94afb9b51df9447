package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/gin-gonic/gin"
)

// stubPostService 只实现测试路径需要的行为
type stubPostService struct {
	published        map[string]*dto.PostDTO
	views            atomic.Int64
	lastSearchStatus string
}

func (s *stubPostService) CreatePost(ctx context.Context, authorID, authorEmail, authorName string, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	return nil, service.UnExpectedError
}

func (s *stubPostService) GetPost(ctx context.Context, slug string) (*dto.PostDTO, error) {
	return nil, service.ErrPostNotFound
}

func (s *stubPostService) GetPublishedPost(ctx context.Context, slug string) (*dto.PostDTO, error) {
	if post, ok := s.published[slug]; ok {
		return post, nil
	}
	return nil, service.ErrPostNotFound
}

func (s *stubPostService) UpdatePost(ctx context.Context, slug string, req *dto.PostUpdateDTO) (*dto.PostDTO, error) {
	return nil, service.ErrPostNotFound
}

func (s *stubPostService) DeletePost(ctx context.Context, slug string) error {
	return service.ErrPostNotFound
}

func (s *stubPostService) IncrementViews(ctx context.Context, slug string) error {
	s.views.Add(1)
	return nil
}

func (s *stubPostService) ListPublished(ctx context.Context, pageSize int, cursor string) (*dto.PostPageDTO, error) {
	list := make([]*dto.PostDTO, 0, len(s.published))
	for _, post := range s.published {
		list = append(list, post)
	}
	return &dto.PostPageDTO{List: list}, nil
}

func (s *stubPostService) ListAll(ctx context.Context, status string) ([]*dto.PostDTO, error) {
	return nil, nil
}

func (s *stubPostService) ListByTag(ctx context.Context, tag string) ([]*dto.PostDTO, error) {
	return nil, nil
}

func (s *stubPostService) SearchByText(ctx context.Context, term, status string) ([]*dto.PostDTO, error) {
	s.lastSearchStatus = status
	return nil, nil
}

func newTestRouter(svc service.PostService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPostHandler(svc)

	r := gin.New()
	r.GET("/api/posts", h.ListPublished)
	r.GET("/api/posts/search", h.SearchPosts)
	r.GET("/api/posts/:slug", h.GetPublishedPost)
	r.POST("/api/posts/:slug/view", h.IncrementViews)
	r.GET("/api/admin/posts/search", h.SearchAllPosts)
	return r
}

func TestGetPublishedPostHTTP(t *testing.T) {
	stub := &stubPostService{
		published: map[string]*dto.PostDTO{
			"hello-world": {Slug: "hello-world", Title: "Hello", Status: "published"},
		},
	}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/hello-world", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body dto.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Code != http.StatusOK {
		t.Errorf("body code = %d", body.Code)
	}
	payload, ok := body.Data.(map[string]interface{})
	if !ok || payload["slug"] != "hello-world" {
		t.Errorf("unexpected payload: %v", body.Data)
	}
}

func TestGetPublishedPostHTTPNotFound(t *testing.T) {
	r := newTestRouter(&stubPostService{published: map[string]*dto.PostDTO{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/ghost", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestPublicSearchForcesPublished(t *testing.T) {
	stub := &stubPostService{published: map[string]*dto.PostDTO{}}
	r := newTestRouter(stub)

	// 公开检索面强制 published，传入的状态参数被无视
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/search?q=x&status=draft", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if stub.lastSearchStatus != "published" {
		t.Errorf("search status = %q, want forced %q", stub.lastSearchStatus, "published")
	}
}

func TestAdminSearchPassesStatus(t *testing.T) {
	stub := &stubPostService{published: map[string]*dto.PostDTO{}}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts/search?q=x&status=draft", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if stub.lastSearchStatus != "draft" {
		t.Errorf("search status = %q, want %q", stub.lastSearchStatus, "draft")
	}
}

func TestIncrementViewsHTTP(t *testing.T) {
	stub := &stubPostService{published: map[string]*dto.PostDTO{}}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts/anything/view", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if stub.views.Load() != 1 {
		t.Errorf("views = %d, want 1", stub.views.Load())
	}
}
