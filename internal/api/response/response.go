package response

import (
	"errors"
	"net/http"

	"clipstream/internal/apperror"
	"clipstream/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一成功响应
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse 统一错误响应
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, message string, details ...string) {
	if details == nil {
		details = []string{}
	}
	c.JSON(statusCode, ErrorResponse{
		Success: false,
		Message: message,
		Errors:  details,
	})
}

// Error 将业务错误翻译为 HTTP 响应；内部错误不向调用方泄露细节，只记日志
func Error(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Cause() != nil {
			logger.Error("Internal error",
				zap.String("path", c.Request.URL.Path),
				zap.Error(appErr.Cause()),
			)
		} else {
			logger.Error("Internal error",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
	}

	Fail(c, status, message)
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}
