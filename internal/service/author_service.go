package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/mongo"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/pkg/util"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type AuthorService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.AuthorDTO, error)
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error)
	// Logout 把令牌签名挂入拒绝名单，有效期与令牌一致
	Logout(ctx context.Context, tokenString string) error
	Check(ctx context.Context, authorID string) (*dto.AuthorDTO, error)
}

type authorServiceImpl struct {
	authorRepo mongo.AuthorRepo
}

func NewAuthorService(authorRepo mongo.AuthorRepo) AuthorService {
	return &authorServiceImpl{
		authorRepo: authorRepo,
	}
}

func (s *authorServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.AuthorDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.authorRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "查询作者失败")
	}
	if existing != nil {
		return nil, ErrEmailExist
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Wrap(err, "密码加密失败")
	}

	author := &mongo.Author{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.authorRepo.Insert(ctx, author); err != nil {
		if mongo.IsDupKey(err) {
			return nil, ErrEmailExist
		}
		return nil, errors.Wrap(err, "写入作者失败")
	}

	return toAuthorDTO(author), nil
}

func (s *authorServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}

	author, err := s.authorRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, errors.Wrap(err, "查询作者失败")
	}
	if author == nil {
		return nil, ErrCredentialIncorrect
	}
	if err := security.CheckPasswordHash(req.Password, author.PasswordHash); err != nil {
		return nil, ErrCredentialIncorrect
	}

	token, err := security.GenerateToken(author.ID, author.Email, author.Name)
	if err != nil {
		return nil, errors.Wrap(err, "签发令牌失败")
	}

	return &dto.TokenDTO{
		Token:  token,
		Author: toAuthorDTO(author),
	}, nil
}

func (s *authorServiceImpl) Logout(ctx context.Context, tokenString string) error {
	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		return UnauthorizedError
	}

	expireHours := config.Cfg.Auth.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	if err := redis.SetWithExpiration(ctx, consts.TokenDenyKey+signature, "1",
		time.Duration(expireHours)*time.Hour); err != nil {
		return errors.Wrap(err, "注销令牌失败")
	}
	return nil
}

func (s *authorServiceImpl) Check(ctx context.Context, authorID string) (*dto.AuthorDTO, error) {
	author, err := s.authorRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, errors.Wrap(err, "查询作者失败")
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}
	return toAuthorDTO(author), nil
}

func toAuthorDTO(author *mongo.Author) *dto.AuthorDTO {
	return &dto.AuthorDTO{
		ID:      author.ID,
		Email:   author.Email,
		Name:    author.Name,
		IsAdmin: config.Cfg.Auth.IsAdminEmail(author.Email),
	}
}
