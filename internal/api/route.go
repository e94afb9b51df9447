package api

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()

	trusted := config.Cfg.Auth.TrustedProxies
	if len(trusted) == 0 {
		trusted = []string{"localhost"}
	}
	_ = r.SetTrustedProxies(trusted)

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			// 无需登录即可访问的接口
			authGroup.POST("/register", group.AuthorHandler.Register)
			authGroup.POST("/login", group.AuthorHandler.Login)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/logout", group.AuthorHandler.Logout)
				loggedGroup.GET("/check", group.AuthorHandler.Check)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			// 公开读取面
			postGroup.GET("", group.PostHandler.ListPublished)
			postGroup.GET("/tag/:tag", group.PostHandler.ListByTag)
			postGroup.GET("/search", group.PostHandler.SearchPosts)
			postGroup.GET("/:slug", group.PostHandler.GetPublishedPost)
			postGroup.POST("/:slug/view", group.PostHandler.IncrementViews)

			// 需要登录 & 管理员名单
			adminGroup := postGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckAdmin())
			{
				adminGroup.POST("", group.PostHandler.CreatePost)
				adminGroup.PUT("/:slug", group.PostHandler.UpdatePost)
				adminGroup.DELETE("/:slug", group.PostHandler.DeletePost)
			}
		}

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckAdmin())
		{
			adminGroup.GET("/posts", group.PostHandler.ListAll)
			adminGroup.GET("/posts/search", group.PostHandler.SearchAllPosts)
			adminGroup.GET("/posts/:slug", group.PostHandler.GetPost)
		}
	}

	return r
}
