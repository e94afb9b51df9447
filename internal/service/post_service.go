package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/mongo"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/util"
	"context"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	log "log/slog"
)

const postCacheExpiration = 10 * time.Minute

type PostService interface {
	// CreatePost 建档。slug 为空时由标题派生并自动消歧，显式指定时冲突直接报错
	CreatePost(ctx context.Context, authorID, authorEmail, authorName string, req *dto.PostCreateDTO) (*dto.PostDTO, error)
	// GetPost 管理端点查，不限状态
	GetPost(ctx context.Context, slug string) (*dto.PostDTO, error)
	// GetPublishedPost 公开端点查，仅已发布文章可见
	GetPublishedPost(ctx context.Context, slug string) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, slug string, req *dto.PostUpdateDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, slug string) error
	// IncrementViews 浏览数 +1，失败只记日志不向调用方冒泡
	IncrementViews(ctx context.Context, slug string) error
	ListPublished(ctx context.Context, pageSize int, cursor string) (*dto.PostPageDTO, error)
	ListAll(ctx context.Context, status string) ([]*dto.PostDTO, error)
	ListByTag(ctx context.Context, tag string) ([]*dto.PostDTO, error)
	SearchByText(ctx context.Context, term, status string) ([]*dto.PostDTO, error)
}

type postServiceImpl struct {
	postRepo   mongo.PostRepo
	repairRepo mongo.RepairRepo
	esRepo     es.PostRepo
}

func NewPostService(postRepo mongo.PostRepo, repairRepo mongo.RepairRepo, esRepo es.PostRepo) PostService {
	return &postServiceImpl{
		postRepo:   postRepo,
		repairRepo: repairRepo,
		esRepo:     esRepo,
	}
}

func (s *postServiceImpl) CreatePost(ctx context.Context, authorID, authorEmail, authorName string, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	// 缺失字段一次性全量上报，而不是报到第一个就停
	var missing []string
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if req.Content == "" {
		missing = append(missing, "content")
	}
	if authorID == "" {
		missing = append(missing, "author_id")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	status := req.Status
	if status == "" {
		status = consts.PostStatusDraft
	}
	if !consts.IsValidPostStatus(status) {
		return nil, ErrStatusInvalid
	}

	explicitSlug := req.Slug != ""
	base := req.Slug
	if explicitSlug {
		if !util.IsValidSlug(base) {
			return nil, ErrSlugInvalid
		}
	} else {
		generated, err := util.GenerateSlug(req.Title)
		if err != nil {
			return nil, ErrTitleBlank
		}
		base = generated
	}

	content := util.SanitizeContent(req.Content)
	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = util.DeriveExcerpt(content, consts.ExcerptRuneLimit)
	}

	post := &mongo.Post{
		Title:         strings.TrimSpace(req.Title),
		Content:       content,
		Excerpt:       excerpt,
		Status:        status,
		AuthorID:      authorID,
		AuthorEmail:   authorEmail,
		AuthorName:    authorName,
		Tags:          req.Tags,
		Categories:    req.Categories,
		FeaturedImage: req.FeaturedImage,
	}

	slug, err := s.insertWithUniqueSlug(ctx, post, base, explicitSlug)
	if err != nil {
		return nil, err
	}

	saved, err := s.postRepo.Get(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(err, "回读新建文章失败")
	}

	s.indexAsync(saved)
	return toPostDTO(saved), nil
}

// insertWithUniqueSlug 以插入冲突为判定手段逐个尝试候选 slug，
// 并发建档时不会出现查完再插的窗口。显式 slug 只试一次。
func (s *postServiceImpl) insertWithUniqueSlug(ctx context.Context, post *mongo.Post, base string, explicit bool) (string, error) {
	slug := base
	for attempt := 0; ; attempt++ {
		post.Slug = slug
		err := s.postRepo.Insert(ctx, post)
		if err == nil {
			return slug, nil
		}
		if !mongo.IsDupKey(err) {
			return "", errors.Wrap(err, "写入文章失败")
		}
		if explicit {
			return "", ErrSlugConflict
		}
		if attempt >= consts.SlugMaxAttempts {
			return "", ErrSlugExhausted
		}
		slug = fmt.Sprintf("%s-%d", base, attempt+1)
	}
}

func (s *postServiceImpl) GetPost(ctx context.Context, slug string) (*dto.PostDTO, error) {
	post, err := s.postRepo.Get(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(err, "查询文章失败")
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return toPostDTO(post), nil
}

func (s *postServiceImpl) GetPublishedPost(ctx context.Context, slug string) (*dto.PostDTO, error) {
	if cached := s.cacheGet(ctx, slug); cached != nil {
		return cached, nil
	}

	post, err := s.postRepo.Get(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(err, "查询文章失败")
	}
	if post == nil || post.Status != consts.PostStatusPublished {
		return nil, ErrPostNotFound
	}

	result := toPostDTO(post)
	s.cacheSet(ctx, slug, result)
	return result, nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, slug string, req *dto.PostUpdateDTO) (*dto.PostDTO, error) {
	existing, err := s.postRepo.Get(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(err, "查询文章失败")
	}
	if existing == nil {
		return nil, ErrPostNotFound
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, ErrTitleBlank
	}
	if req.Status != nil && !consts.IsValidPostStatus(*req.Status) {
		return nil, ErrStatusInvalid
	}

	// 显式 slug 优先；只改标题时由新标题重新派生，派生结果变了就走改名
	targetSlug := slug
	if req.Slug != nil {
		targetSlug = *req.Slug
	} else if req.Title != nil {
		derived, err := util.GenerateSlug(*req.Title)
		if err != nil {
			return nil, ErrTitleBlank
		}
		targetSlug = derived
	}
	if targetSlug != slug {
		return s.renamePost(ctx, existing, targetSlug, req)
	}

	fields := updateFields(req)
	if len(fields) > 0 {
		matched, err := s.postRepo.Update(ctx, slug, fields)
		if err != nil {
			return nil, errors.Wrap(err, "更新文章失败")
		}
		if !matched {
			return nil, ErrPostNotFound
		}
	}

	saved, err := s.postRepo.Get(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(err, "回读文章失败")
	}
	if saved == nil {
		return nil, ErrPostNotFound
	}

	s.cacheDrop(ctx, slug)
	s.indexAsync(saved)
	return toPostDTO(saved), nil
}

// renamePost 先在新 slug 下落盘，再删旧文档；删除失败登记补偿任务由定时任务兜底，
// 保证任何时刻至少有一份完整文档存在。
func (s *postServiceImpl) renamePost(ctx context.Context, existing *mongo.Post, newSlug string, req *dto.PostUpdateDTO) (*dto.PostDTO, error) {
	if !util.IsValidSlug(newSlug) {
		return nil, ErrSlugInvalid
	}

	// 先查占用，避免为注定冲突的改名构造整档写入；插入冲突检测仍是最终防线
	taken, err := s.postRepo.Exists(ctx, newSlug)
	if err != nil {
		return nil, errors.Wrap(err, "查询 slug 占用失败")
	}
	if taken {
		return nil, ErrSlugConflict
	}

	oldSlug := existing.Slug
	moved := *existing
	applyUpdate(&moved, req)
	moved.Slug = newSlug

	if err := s.postRepo.Insert(ctx, &moved); err != nil {
		if mongo.IsDupKey(err) {
			return nil, ErrSlugConflict
		}
		return nil, errors.Wrap(err, "写入改名文章失败")
	}

	if _, err := s.postRepo.Delete(ctx, oldSlug); err != nil {
		log.WarnContext(ctx, "改名后删除旧文档失败，已登记补偿任务",
			"old_slug", oldSlug, "new_slug", newSlug, "error", err)
		if repairErr := s.repairRepo.Add(ctx, oldSlug, newSlug); repairErr != nil {
			log.ErrorContext(ctx, "登记 slug 补偿任务失败", "old_slug", oldSlug, "error", repairErr)
		}
	}

	saved, err := s.postRepo.Get(ctx, newSlug)
	if err != nil {
		return nil, errors.Wrap(err, "回读改名文章失败")
	}

	s.cacheDrop(ctx, oldSlug, newSlug)
	s.removeIndexAsync(oldSlug)
	s.indexAsync(saved)
	return toPostDTO(saved), nil
}

func (s *postServiceImpl) DeletePost(ctx context.Context, slug string) error {
	deleted, err := s.postRepo.Delete(ctx, slug)
	if err != nil {
		return errors.Wrap(err, "删除文章失败")
	}
	if !deleted {
		return ErrPostNotFound
	}

	s.cacheDrop(ctx, slug)
	s.removeIndexAsync(slug)
	return nil
}

func (s *postServiceImpl) IncrementViews(ctx context.Context, slug string) error {
	if err := s.postRepo.IncrementViews(ctx, slug); err != nil {
		log.WarnContext(ctx, "浏览数自增失败", "slug", slug, "error", err)
	}
	return nil
}

func (s *postServiceImpl) ListPublished(ctx context.Context, pageSize int, cursor string) (*dto.PostPageDTO, error) {
	if pageSize <= 0 {
		pageSize = consts.DefaultPageSize
	}
	if pageSize > consts.MaxPageSize {
		pageSize = consts.MaxPageSize
	}

	after, err := decodePageCursor(cursor)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListPublished(ctx, pageSize, after)
	if err != nil {
		return nil, errors.Wrap(err, "查询已发布列表失败")
	}

	page := &dto.PostPageDTO{
		List:    toPostDTOs(posts),
		HasMore: len(posts) == pageSize,
	}
	if page.HasMore {
		last := posts[len(posts)-1]
		page.NextCursor = util.EncodeCursor([]interface{}{
			last.CreatedAt.Format(time.RFC3339Nano),
			last.Slug,
		})
	}
	return page, nil
}

func (s *postServiceImpl) ListAll(ctx context.Context, status string) ([]*dto.PostDTO, error) {
	if status != "" && !consts.IsValidPostStatus(status) {
		return nil, ErrStatusInvalid
	}

	posts, err := s.postRepo.ListAll(ctx, status)
	if err != nil {
		return nil, errors.Wrap(err, "查询文章列表失败")
	}
	return toPostDTOs(posts), nil
}

func (s *postServiceImpl) ListByTag(ctx context.Context, tag string) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.ListByTag(ctx, tag)
	if err != nil {
		return nil, errors.Wrap(err, "按标签查询失败")
	}
	return toPostDTOs(posts), nil
}

func (s *postServiceImpl) SearchByText(ctx context.Context, term, status string) ([]*dto.PostDTO, error) {
	if status == "" {
		status = consts.PostStatusPublished
	}
	if !consts.IsValidPostStatus(status) {
		return nil, ErrStatusInvalid
	}

	if s.esRepo != nil {
		hits, err := s.esRepo.SearchPosts(ctx, term, status, 0, consts.MaxPageSize)
		if err != nil {
			return nil, errors.Wrap(err, "检索失败")
		}
		return esToPostDTOs(hits), nil
	}

	// 未接入 ES 时退化为内存过滤，数据量小的站点够用
	posts, err := s.postRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, errors.Wrap(err, "检索失败")
	}

	needle := strings.ToLower(term)
	var matched []*mongo.Post
	for _, post := range posts {
		if matchPost(post, needle) {
			matched = append(matched, post)
		}
	}
	return toPostDTOs(matched), nil
}

func matchPost(post *mongo.Post, needle string) bool {
	if strings.Contains(strings.ToLower(post.Title), needle) ||
		strings.Contains(strings.ToLower(post.Content), needle) ||
		strings.Contains(strings.ToLower(post.Excerpt), needle) {
		return true
	}
	for _, tag := range post.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func decodePageCursor(cursor string) (*mongo.PageCursor, error) {
	if cursor == "" {
		return nil, nil
	}

	values, err := util.DecodeCursor(cursor)
	if err != nil || len(values) != 2 {
		return nil, ErrValidation
	}
	createdAtStr, ok1 := values[0].(string)
	slug, ok2 := values[1].(string)
	if !ok1 || !ok2 {
		return nil, ErrValidation
	}
	createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, ErrValidation
	}

	return &mongo.PageCursor{CreatedAt: createdAt, Slug: slug}, nil
}

func updateFields(req *dto.PostUpdateDTO) bson.M {
	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		fields["content"] = util.SanitizeContent(*req.Content)
	}
	if req.Excerpt != nil {
		fields["excerpt"] = *req.Excerpt
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Tags != nil {
		fields["tags"] = req.Tags
	}
	if req.Categories != nil {
		fields["categories"] = req.Categories
	}
	if req.FeaturedImage != nil {
		fields["featured_image"] = *req.FeaturedImage
	}
	return fields
}

// applyUpdate 把增量更新合入内存中的文档，改名走整档重写时使用
func applyUpdate(post *mongo.Post, req *dto.PostUpdateDTO) {
	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		post.Content = util.SanitizeContent(*req.Content)
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Status != nil {
		post.Status = *req.Status
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}
	if req.Categories != nil {
		post.Categories = req.Categories
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = *req.FeaturedImage
	}
}

func (s *postServiceImpl) cacheGet(ctx context.Context, slug string) *dto.PostDTO {
	if redis.GetRdbClient() == nil {
		return nil
	}
	raw, err := redis.GetValue(ctx, consts.PostCacheKey+slug)
	if err != nil || raw == "" {
		return nil
	}
	var post dto.PostDTO
	if err := json.Unmarshal([]byte(raw), &post); err != nil {
		return nil
	}
	return &post
}

func (s *postServiceImpl) cacheSet(ctx context.Context, slug string, post *dto.PostDTO) {
	if redis.GetRdbClient() == nil {
		return
	}
	raw, err := json.Marshal(post)
	if err != nil {
		return
	}
	if err := redis.SetWithExpiration(ctx, consts.PostCacheKey+slug, string(raw), postCacheExpiration); err != nil {
		log.WarnContext(ctx, "写入文章缓存失败", "slug", slug, "error", err)
	}
}

func (s *postServiceImpl) cacheDrop(ctx context.Context, slugs ...string) {
	if redis.GetRdbClient() == nil {
		return
	}
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, consts.PostCacheKey+slug)
	}
	if err := redis.DeleteKey(ctx, keys...); err != nil {
		log.WarnContext(ctx, "清理文章缓存失败", "slugs", slugs, "error", err)
	}
}

func (s *postServiceImpl) indexAsync(post *mongo.Post) {
	if s.esRepo == nil || post == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		doc := toPostES(post)
		if err := s.esRepo.IndexPost(ctx, doc, post.UpdatedAt.UnixMilli()); err != nil {
			log.Error("同步文章索引失败", "slug", post.Slug, "error", err)
		}
	}()
}

func (s *postServiceImpl) removeIndexAsync(slug string) {
	if s.esRepo == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.esRepo.DeletePost(ctx, slug); err != nil {
			log.Error("删除文章索引失败", "slug", slug, "error", err)
		}
	}()
}

func toPostDTO(post *mongo.Post) *dto.PostDTO {
	if post == nil {
		return nil
	}

	result := &dto.PostDTO{}
	if err := copier.Copy(result, post); err != nil {
		log.Error("文章转换失败", "slug", post.Slug, "error", err)
	}
	result.Slug = post.Slug
	result.CreatedAt = formatTime(post.CreatedAt)
	result.UpdatedAt = formatTime(post.UpdatedAt)
	return result
}

func toPostDTOs(posts []*mongo.Post) []*dto.PostDTO {
	list := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		list = append(list, toPostDTO(post))
	}
	return list
}

func toPostES(post *mongo.Post) *es.PostES {
	doc := &es.PostES{}
	if err := copier.Copy(doc, post); err != nil {
		log.Error("索引文档转换失败", "slug", post.Slug, "error", err)
	}
	doc.Slug = post.Slug
	return doc
}

func esToPostDTOs(hits []*es.PostES) []*dto.PostDTO {
	list := make([]*dto.PostDTO, 0, len(hits))
	for _, hit := range hits {
		item := &dto.PostDTO{}
		if err := copier.Copy(item, hit); err != nil {
			log.Error("检索结果转换失败", "slug", hit.Slug, "error", err)
		}
		item.CreatedAt = formatTime(hit.CreatedAt)
		item.UpdatedAt = formatTime(hit.UpdatedAt)
		list = append(list, item)
	}
	return list
}

// formatTime 存储端尚未回写时间时返回 nil，序列化为 null
func formatTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339Nano)
	return &formatted
}
