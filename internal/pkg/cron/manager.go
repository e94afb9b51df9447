package cron

import (
	"Inkstone/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine        *cron.Cron
	slugRepairJob *job.SlugRepairJob
	reindexJob    *job.PostReindexJob
}

// NewCronManager 未开启 ES 时 reindexJob 传 nil
func NewCronManager(slugRepairJob *job.SlugRepairJob, reindexJob *job.PostReindexJob) *Manager {
	return &Manager{
		engine:        cron.New(cron.WithSeconds()),
		slugRepairJob: slugRepairJob,
		reindexJob:    reindexJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@every 5m", s.slugRepairJob); err != nil {
		return err
	}
	if s.reindexJob != nil {
		if _, err := s.engine.AddJob("@daily", s.reindexJob); err != nil {
			return err
		}
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
