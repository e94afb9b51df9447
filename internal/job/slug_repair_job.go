package job

import (
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/pkg/mongo"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// SlugRepairJob 兜底清理改名后残留的旧文档。
// 改名时删除失败会登记补偿任务，这里逐条重试，成功后摘除任务。
type SlugRepairJob struct {
	postRepo   mongo.PostRepo
	repairRepo mongo.RepairRepo
}

func NewSlugRepairJob(postRepo mongo.PostRepo, repairRepo mongo.RepairRepo) *SlugRepairJob {
	return &SlugRepairJob{
		postRepo:   postRepo,
		repairRepo: repairRepo,
	}
}

func (s *SlugRepairJob) Run() {
	traceID := "job-slug-repair-" + uuid.NewString()
	ctx, cancel := context.WithTimeout(
		context.WithValue(context.Background(), logger.TraceIDKey, traceID),
		2*time.Minute,
	)
	defer cancel()

	repairs, err := s.repairRepo.List(ctx)
	if err != nil {
		log.ErrorContext(ctx, "拉取 slug 补偿任务失败", "err", err)
		return
	}
	if len(repairs) == 0 {
		return
	}

	log.InfoContext(ctx, "SlugRepairJob processing", "count", len(repairs))

	for _, repair := range repairs {
		old, err := s.postRepo.Get(ctx, repair.OldSlug)
		if err != nil {
			log.ErrorContext(ctx, "查询旧 slug 文档失败", "old_slug", repair.OldSlug, "err", err)
			continue
		}
		// 旧档已不在，残留已被清理或被删，任务直接摘除
		if old == nil {
			s.removeTask(ctx, repair.OldSlug)
			continue
		}

		fresh, err := s.postRepo.Get(ctx, repair.NewSlug)
		if err != nil {
			log.ErrorContext(ctx, "查询新 slug 文档失败", "new_slug", repair.NewSlug, "err", err)
			continue
		}
		// 改名保留 created_at 与作者，对不上说明旧 slug 已被合法复用
		// 或改名后的文章已整体删除，此时不能动现存文档
		if fresh == nil || !old.CreatedAt.Equal(fresh.CreatedAt) || old.AuthorID != fresh.AuthorID {
			log.WarnContext(ctx, "旧 slug 文档与补偿记录不匹配，放弃清理",
				"old_slug", repair.OldSlug, "new_slug", repair.NewSlug)
			s.removeTask(ctx, repair.OldSlug)
			continue
		}

		if _, err := s.postRepo.Delete(ctx, repair.OldSlug); err != nil {
			log.ErrorContext(ctx, "清理旧 slug 文档失败", "old_slug", repair.OldSlug, "err", err)
			continue
		}
		s.removeTask(ctx, repair.OldSlug)
	}
}

func (s *SlugRepairJob) removeTask(ctx context.Context, oldSlug string) {
	if err := s.repairRepo.Remove(ctx, oldSlug); err != nil {
		log.ErrorContext(ctx, "摘除补偿任务失败", "old_slug", oldSlug, "err", err)
	}
}
