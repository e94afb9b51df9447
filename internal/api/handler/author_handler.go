package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type AuthorHandler struct {
	authorSvc service.AuthorService
}

func NewAuthorHandler(authorSvc service.AuthorService) *AuthorHandler {
	return &AuthorHandler{
		authorSvc: authorSvc,
	}
}

func (s *AuthorHandler) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	author, err := s.authorSvc.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, author)
}

func (s *AuthorHandler) Login(c *gin.Context) {
	var req dto.CredentialDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	token, err := s.authorSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}

func (s *AuthorHandler) Logout(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	if err := s.authorSvc.Logout(c.Request.Context(), tokenString); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Check 返回当前令牌对应的作者信息，前端用于恢复登录态
func (s *AuthorHandler) Check(c *gin.Context) {
	author, err := s.authorSvc.Check(c.Request.Context(), c.GetString("author_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, author)
}
