package token

import (
	"testing"
	"time"

	"clipstream/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("clipstream-test", &config.JWTConfig{
		AccessSecret:        "access-secret-for-tests",
		AccessExpireMinutes: 15,
		RefreshSecret:       "refresh-secret-for-tests",
		RefreshExpireDays:   10,
	})
}

func TestIssueAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	raw, err := m.IssueAccessToken(42, "alice", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := m.ParseAccessToken(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "clipstream-test", claims.Issuer)
}

func TestIssueAndParseRefreshToken(t *testing.T) {
	m := newTestManager()

	raw, err := m.IssueRefreshToken(42)
	require.NoError(t, err)

	claims, err := m.ParseRefreshToken(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestIssueRefreshToken_DistinctWithinSameSecond(t *testing.T) {
	m := newTestManager()

	// 同一秒内连续签发也必须得到不同的令牌，否则单会话轮换形同虚设
	first, err := m.IssueRefreshToken(1)
	require.NoError(t, err)
	second, err := m.IssueRefreshToken(1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestAccessAndRefreshSecretsAreIndependent(t *testing.T) {
	m := newTestManager()

	access, err := m.IssueAccessToken(1, "alice", "alice@example.com")
	require.NoError(t, err)

	// 访问令牌不能冒充刷新令牌
	_, err = m.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager("clipstream-test", &config.JWTConfig{
		AccessSecret:        "a-different-secret",
		AccessExpireMinutes: 15,
		RefreshSecret:       "another-different-secret",
		RefreshExpireDays:   10,
	})

	raw, err := m.IssueAccessToken(1, "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = other.ParseAccessToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_ExpiredToken(t *testing.T) {
	m := NewManager("clipstream-test", &config.JWTConfig{
		AccessSecret:        "access-secret-for-tests",
		AccessExpireMinutes: 0,
		RefreshSecret:       "refresh-secret-for-tests",
		RefreshExpireDays:   10,
	})
	// 有效期为 0 分钟，签发即过期
	raw, err := m.IssueAccessToken(1, "alice", "alice@example.com")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = m.ParseAccessToken(raw)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParse_Garbage(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTTLAccessors(t *testing.T) {
	m := newTestManager()
	assert.Equal(t, 15*time.Minute, m.AccessTTL())
	assert.Equal(t, 10*24*time.Hour, m.RefreshTTL())
}
