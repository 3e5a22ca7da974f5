package apperror

import (
	"errors"
	"net/http"
)

// 错误类别哨兵，handler 层统一翻译为 HTTP 状态码
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidToken    = errors.New("invalid token")
	ErrStaleToken      = errors.New("stale token")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal error")
)

// AppError 业务错误，携带类别哨兵与面向调用方的消息
type AppError struct {
	Kind    error  // 上面的哨兵之一
	Message string // 返回给调用方的消息
	Err     error  // 底层原因，可为 nil
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

// Cause 返回底层原因错误
func (e *AppError) Cause() error {
	return e.Err
}

// HTTPStatus 返回错误对应的 HTTP 状态码
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrStaleToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind error, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: cause}
}

// InvalidArgument 参数无效（格式错误的 ID、缺少必填字段）
func InvalidArgument(message string) *AppError {
	return newError(ErrInvalidArgument, message, nil)
}

// Unauthorized 未携带凭证或凭证校验失败
func Unauthorized(message string) *AppError {
	return newError(ErrUnauthorized, message, nil)
}

// InvalidToken 令牌签名或有效期校验失败
func InvalidToken(message string) *AppError {
	return newError(ErrInvalidToken, message, nil)
}

// StaleToken 刷新令牌与当前存储的不一致（已被轮换淘汰）
func StaleToken(message string) *AppError {
	return newError(ErrStaleToken, message, nil)
}

// Forbidden 无权操作该资源
func Forbidden(message string) *AppError {
	return newError(ErrForbidden, message, nil)
}

// NotFound 资源不存在
func NotFound(message string) *AppError {
	return newError(ErrNotFound, message, nil)
}

// Conflict 唯一性冲突（用户名或邮箱已存在）
func Conflict(message string) *AppError {
	return newError(ErrConflict, message, nil)
}

// Internal 未预期的内部错误，cause 仅用于日志
func Internal(message string, cause error) *AppError {
	return newError(ErrInternal, message, cause)
}
