package middleware

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckAdmin 检查当前作者是否在管理员名单内，需在 AuthMiddleware 之后挂载
func CheckAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("author_email")

		if email == "" || !config.Cfg.Auth.IsAdminEmail(email) {
			response.Fail(c, service.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Next()
	}
}
