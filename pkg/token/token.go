package token

import (
	"errors"
	"fmt"
	"time"

	"clipstream/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// AccessClaims 访问令牌 Claims，携带下游鉴权需要的身份信息
type AccessClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims 刷新令牌 Claims，只携带用户 ID
type RefreshClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager 签发和校验 JWT，配置在构造时注入
type Manager struct {
	issuer        string
	accessSecret  []byte
	accessExpire  time.Duration
	refreshSecret []byte
	refreshExpire time.Duration
}

func NewManager(appName string, cfg *config.JWTConfig) *Manager {
	return &Manager{
		issuer:        appName,
		accessSecret:  []byte(cfg.AccessSecret),
		accessExpire:  cfg.AccessExpireDuration(),
		refreshSecret: []byte(cfg.RefreshSecret),
		refreshExpire: cfg.RefreshExpireDuration(),
	}
}

// AccessTTL 返回访问令牌有效期
func (m *Manager) AccessTTL() time.Duration {
	return m.accessExpire
}

// RefreshTTL 返回刷新令牌有效期
func (m *Manager) RefreshTTL() time.Duration {
	return m.refreshExpire
}

// IssueAccessToken 签发访问令牌（短有效期）
func (m *Manager) IssueAccessToken(userID int64, username, email string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:   userID,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessExpire)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// IssueRefreshToken 签发刷新令牌（长有效期，仅含用户 ID）。
// jti 保证同一用户同一秒内的两次签发也互不相同，令牌轮换依赖每次签发都是新串。
func (m *Manager) IssueRefreshToken(userID int64) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        xid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshExpire)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return tokenString, nil
}

// ParseAccessToken 解析并校验访问令牌
func (m *Manager) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := m.parse(tokenString, &claims, m.accessSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}

// ParseRefreshToken 解析并校验刷新令牌
func (m *Manager) ParseRefreshToken(tokenString string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := m.parse(tokenString, &claims, m.refreshSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (m *Manager) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
