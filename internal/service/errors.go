package service

import (
	"errors"
	"strings"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrValidation          = errors.New("参数校验失败")
	ErrTitleBlank          = errors.New("标题不能为空白字符")
	ErrSlugInvalid         = errors.New("slug 只能包含小写字母、数字和连字符")
	ErrSlugConflict        = errors.New("slug 已被占用")
	ErrSlugExhausted       = errors.New("无法生成唯一 slug，请更换标题或显式指定 slug")
	ErrStatusInvalid       = errors.New("状态值不合法")
	ErrPostNotFound        = errors.New("文章不存在")
	ErrAuthorNotFound      = errors.New("作者不存在")
	ErrEmailExist          = errors.New("邮箱已注册")
	ErrCredentialIncorrect = errors.New("邮箱或密码错误")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrValidation:          BadRequest,
	ErrTitleBlank:          BadRequest,
	ErrSlugInvalid:         BadRequest,
	ErrSlugConflict:        Conflict,
	ErrSlugExhausted:       BadRequest,
	ErrStatusInvalid:       BadRequest,
	ErrPostNotFound:        NotFound,
	ErrAuthorNotFound:      NotFound,
	ErrEmailExist:          BadRequest,
	ErrCredentialIncorrect: Unauthorized,
	UnauthorizedError:      Forbidden,
	UnExpectedError:        InternalServerError,
}

// MissingFieldsError 建档校验失败，一次性列出全部缺失字段
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "缺少必填字段: " + strings.Join(e.Fields, ", ")
}

// Is 使 errors.Is(err, ErrValidation) 成立，便于统一映射业务码
func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrValidation
}
