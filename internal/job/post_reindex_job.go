package job

import (
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/pkg/mongo"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// PostReindexJob 全量对账式重建索引，修复在线写入期间漏掉或写失败的文档。
// 索引带外部版本号，旧数据不会覆盖新数据。
type PostReindexJob struct {
	postRepo mongo.PostRepo
	esRepo   es.PostRepo
}

func NewPostReindexJob(postRepo mongo.PostRepo, esRepo es.PostRepo) *PostReindexJob {
	return &PostReindexJob{
		postRepo: postRepo,
		esRepo:   esRepo,
	}
}

func (s *PostReindexJob) Run() {
	traceID := "job-post-reindex-" + uuid.NewString()
	ctx, cancel := context.WithTimeout(
		context.WithValue(context.Background(), logger.TraceIDKey, traceID),
		10*time.Minute,
	)
	defer cancel()

	posts, err := s.postRepo.ListByStatus(ctx, "")
	if err != nil {
		log.ErrorContext(ctx, "拉取全量文章失败", "err", err)
		return
	}

	log.InfoContext(ctx, "PostReindexJob processing", "count", len(posts))

	var failed int
	for _, post := range posts {
		doc := &es.PostES{}
		if err := copier.Copy(doc, post); err != nil {
			log.ErrorContext(ctx, "索引文档转换失败", "slug", post.Slug, "err", err)
			failed++
			continue
		}
		doc.Slug = post.Slug

		if err := s.esRepo.IndexPost(ctx, doc, post.UpdatedAt.UnixMilli()); err != nil {
			log.ErrorContext(ctx, "重建索引失败", "slug", post.Slug, "err", err)
			failed++
		}
	}

	log.InfoContext(ctx, "PostReindexJob done", "total", len(posts), "failed", failed)
}
