package wire

import (
	"Inkstone/internal/api"
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/handler"
	"Inkstone/internal/job"
	"Inkstone/internal/pkg/cron"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/mongo"
	"Inkstone/internal/service"
	"context"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	CronMgr *cron.Manager
}

func BuildApplication(db *mongodriver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := mongo.NewPostRepo(db)
	authorRepo := mongo.NewAuthorRepo(db)
	repairRepo := mongo.NewRepairRepo(db)

	if err := authorRepo.EnsureIndexes(context.Background()); err != nil {
		return nil, err
	}

	// ES 未开启时检索退化为内存过滤
	var esRepo es.PostRepo
	if cfg.Elastic.Enabled {
		esRepo = es.NewPostRepo(es.Client)
	}

	postService := service.NewPostService(postRepo, repairRepo, esRepo)
	authorService := service.NewAuthorService(authorRepo)

	handlers := &api.HandlersGroup{
		AuthorHandler: handler.NewAuthorHandler(authorService),
		PostHandler:   handler.NewPostHandler(postService),
	}

	router := api.SetupRouter(handlers)

	var reindexJob *job.PostReindexJob
	if esRepo != nil {
		reindexJob = job.NewPostReindexJob(postRepo, esRepo)
	}
	cronMgr := cron.NewCronManager(job.NewSlugRepairJob(postRepo, repairRepo), reindexJob)

	return &ApplicationContainer{
		Router:  router,
		CronMgr: cronMgr,
	}, nil
}
