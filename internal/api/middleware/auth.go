package middleware

import (
	"errors"
	"strings"

	"clipstream/internal/api/response"
	"clipstream/internal/apperror"
	"clipstream/internal/model"
	"clipstream/pkg/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// AccessTokenCookie 访问令牌 Cookie 名
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie 刷新令牌 Cookie 名
	RefreshTokenCookie = "refreshToken"

	ContextKeyUserID   = "currentUserID"
	ContextKeyUsername = "currentUsername"
)

// UserLoader 按 ID 加载用户，认证中间件用它确认令牌指向的账号仍然存在
type UserLoader interface {
	GetByID(id int64) (*model.User, error)
}

// AuthRequired JWT 认证中间件，要求请求必须携带有效访问令牌，
// 且令牌指向的用户仍然存在（账号注销后未过期的令牌立即失效）。
// Cookie 优先于 Authorization 头。
func AuthRequired(tokens *token.Manager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ExtractAccessToken(c)
		if raw == "" {
			response.Unauthorized(c, "缺少认证令牌")
			c.Abort()
			return
		}

		claims, err := tokens.ParseAccessToken(raw)
		if err != nil {
			response.Unauthorized(c, "无效或过期的认证令牌")
			c.Abort()
			return
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Unauthorized(c, "无效的认证令牌")
			} else {
				response.Error(c, apperror.Internal("认证失败，请稍后重试", err))
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUsername, user.Username)
		c.Next()
	}
}

// AuthOptional 可选认证：令牌有效且用户存在则注入用户信息，否则按匿名请求放行
func AuthOptional(tokens *token.Manager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ExtractAccessToken(c)
		if raw != "" {
			if claims, err := tokens.ParseAccessToken(raw); err == nil {
				if user, err := users.GetByID(claims.UserID); err == nil {
					c.Set(ContextKeyUserID, user.ID)
					c.Set(ContextKeyUsername, user.Username)
				}
			}
		}
		c.Next()
	}
}

// GetCurrentUserID 从 Gin Context 中获取当前登录用户 ID
func GetCurrentUserID(c *gin.Context) (int64, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := val.(int64)
	return userID, ok
}

// ExtractAccessToken 提取访问令牌：先读 Cookie，再读 Authorization 头的 Bearer Token
func ExtractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
