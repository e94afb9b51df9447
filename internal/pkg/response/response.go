package response

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	log "log/slog"
)

// Success 统一成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// Fail 指定状态码的失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, dto.Response{
		Code:    code,
		Message: message,
	})
}

// Error 按错误类型映射状态码，未识别的错误一律按 500 处理
func Error(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &validationErrs) || errors.As(err, &typeErr) {
		Fail(c, http.StatusBadRequest, "参数错误")
		return
	}

	var dtoErr *util.ValidationError
	if errors.As(err, &dtoErr) {
		Fail(c, http.StatusBadRequest, dtoErr.Error())
		return
	}

	for sentinel, code := range service.ErrorMap {
		if errors.Is(err, sentinel) {
			Fail(c, code, err.Error())
			return
		}
	}

	log.ErrorContext(c.Request.Context(), "未处理的服务错误", "error", err)
	Fail(c, http.StatusInternalServerError, service.UnExpectedError.Error())
}
