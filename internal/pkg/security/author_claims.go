package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthorClaims 定义了 Token 中需要携带的业务信息
type AuthorClaims struct {
	AuthorID string `json:"author_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}
