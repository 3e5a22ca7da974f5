package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"clipstream/internal/api/dto"
	"clipstream/internal/apperror"
	infraMinio "clipstream/internal/infra/minio"
	"clipstream/internal/model"
	"clipstream/pkg/logger"
	"clipstream/pkg/token"
	"clipstream/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const relayTimeout = 5 * time.Minute

type AuthService struct {
	users  UserStore
	tokens *token.Manager
	media  MediaRelay
}

func NewAuthService(users UserStore, tokens *token.Manager, media MediaRelay) *AuthService {
	return &AuthService{users: users, tokens: tokens, media: media}
}

// Register 用户注册：重复检查（阻塞调用）-> 头像上传 -> 入库
// avatarPath 必填，coverPath 可为空
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, avatarPath, coverPath string) (*dto.UserInfo, error) {
	if avatarPath == "" {
		return nil, apperror.InvalidArgument("头像文件不能为空")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		return nil, apperror.Internal("注册失败，请稍后重试", err)
	}
	if exists {
		return nil, apperror.Conflict("用户名或邮箱已被注册")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal("注册失败，请稍后重试", err)
	}

	relayCtx, cancel := context.WithTimeout(ctx, relayTimeout)
	defer cancel()

	avatar, err := s.media.Upload(relayCtx, avatarPath, infraMinio.KindImage)
	if err != nil {
		return nil, apperror.Internal("头像上传失败", err)
	}

	user := &model.User{
		Username:     strings.ToLower(req.Username),
		Email:        req.Email,
		FullName:     req.FullName,
		Password:     hashedPassword,
		AvatarURL:    avatar.URL,
		AvatarObject: avatar.ObjectName,
	}

	if coverPath != "" {
		cover, err := s.media.Upload(relayCtx, coverPath, infraMinio.KindImage)
		if err != nil {
			return nil, apperror.Internal("封面上传失败", err)
		}
		user.CoverURL = cover.URL
		user.CoverObject = cover.ObjectName
	}

	// 重复检查和入库之间仍可能有并发注册抢先，唯一索引冲突同样按已注册处理
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("用户名或邮箱已被注册")
		}
		return nil, apperror.Internal("注册失败，请稍后重试", err)
	}

	return toUserInfo(user), nil
}

// Login 用户登录：用户名或邮箱 + 密码，成功后签发并持久化新令牌对
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginData, error) {
	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		return nil, apperror.InvalidArgument("用户名或邮箱不能为空")
	}

	user, err := s.users.GetByUsernameOrEmail(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("用户不存在")
		}
		return nil, apperror.Internal("登录失败，请稍后重试", err)
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, apperror.Unauthorized("用户名或密码错误")
	}

	pair, err := s.issueAndStoreTokens(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginData{User: *toUserInfo(user), TokenPair: *pair}, nil
}

// Logout 用户登出：清除存储的刷新令牌，此后旧令牌全部失效
func (s *AuthService) Logout(userID int64) error {
	if err := s.users.UpdateRefreshToken(userID, nil); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("用户不存在")
		}
		return apperror.Internal("登出失败，请稍后重试", err)
	}
	return nil
}

// Refresh 刷新令牌轮换：校验签名 -> 与存储的唯一刷新令牌比对 -> 签发并持久化新令牌对。
// 比对失败说明该令牌已被更新的一次刷新淘汰（单会话轮换策略）。
func (s *AuthService) Refresh(presented string) (*dto.TokenPair, error) {
	if presented == "" {
		return nil, apperror.Unauthorized("缺少刷新令牌")
	}

	claims, err := s.tokens.ParseRefreshToken(presented)
	if err != nil {
		return nil, apperror.InvalidToken("无效或过期的刷新令牌")
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.InvalidToken("无效的刷新令牌")
		}
		return nil, apperror.Internal("刷新令牌失败，请稍后重试", err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != presented {
		return nil, apperror.StaleToken("刷新令牌已失效，请重新登录")
	}

	return s.issueAndStoreTokens(user)
}

// ChangePassword 修改密码
func (s *AuthService) ChangePassword(userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("用户不存在")
		}
		return apperror.Internal("修改密码失败，请稍后重试", err)
	}

	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return apperror.InvalidArgument("原密码错误")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperror.Internal("修改密码失败，请稍后重试", err)
	}

	if _, err := s.users.Update(userID, map[string]interface{}{"password": hashed}); err != nil {
		return apperror.Internal("修改密码失败，请稍后重试", err)
	}
	return nil
}

// issueAndStoreTokens 签发新令牌对并在响应前持久化刷新令牌
func (s *AuthService) issueAndStoreTokens(user *model.User) (*dto.TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, apperror.Internal("令牌签发失败", err)
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperror.Internal("令牌签发失败", err)
	}

	if err := s.users.UpdateRefreshToken(user.ID, &refreshToken); err != nil {
		logger.Error("Persist refresh token failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, apperror.Internal("令牌签发失败", err)
	}

	return &dto.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
		CoverURL:  user.CoverURL,
		CreatedAt: user.CreatedAt,
	}
}
