package middleware

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/service"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将作者身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, service.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, service.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		// 已注销的令牌签名会挂在拒绝名单里
		value, err := redis.GetValue(c.Request.Context(), consts.TokenDenyKey+signature)
		if err != nil {
			response.Fail(c, service.InternalServerError, "未知错误")
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, service.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, service.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set("author_id", claims.AuthorID)
		c.Set("author_email", claims.Email)
		c.Set("author_name", claims.Name)

		newCtx := context.WithValue(c.Request.Context(), "author_id", claims.AuthorID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
