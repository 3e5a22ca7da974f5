package service

import (
	"context"
	"errors"
	"strings"

	"clipstream/internal/api/dto"
	"clipstream/internal/apperror"
	infraMinio "clipstream/internal/infra/minio"
	"clipstream/internal/model"
	"clipstream/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	users   UserStore
	subs    SubscriptionStore
	history HistoryStore
	media   MediaRelay
}

func NewUserService(users UserStore, subs SubscriptionStore, history HistoryStore, media MediaRelay) *UserService {
	return &UserService{users: users, subs: subs, history: history, media: media}
}

// GetCurrent 获取当前登录用户信息
func (s *UserService) GetCurrent(userID int64) (*dto.UserInfo, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("用户不存在")
		}
		return nil, apperror.Internal("获取用户信息失败", err)
	}
	return toUserInfo(user), nil
}

// UpdateAccount 更新昵称/邮箱，邮箱重复时返回冲突
func (s *UserService) UpdateAccount(userID int64, req *dto.UpdateAccountRequest) (*dto.UserInfo, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		exists, err := s.users.ExistsByEmail(*req.Email, userID)
		if err != nil {
			return nil, apperror.Internal("更新账号信息失败", err)
		}
		if exists {
			return nil, apperror.Conflict("邮箱已被其他账号使用")
		}
		updates["email"] = *req.Email
	}
	if len(updates) == 0 {
		return nil, apperror.InvalidArgument("没有需要更新的字段")
	}

	user, err := s.users.Update(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("用户不存在")
		}
		return nil, apperror.Internal("更新账号信息失败", err)
	}
	return toUserInfo(user), nil
}

// UpdateAvatar 更换头像，成功后删除旧对象
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, localPath string) (*dto.UserInfo, error) {
	return s.updateImage(ctx, userID, localPath, "avatar")
}

// UpdateCover 更换封面，成功后删除旧对象
func (s *UserService) UpdateCover(ctx context.Context, userID int64, localPath string) (*dto.UserInfo, error) {
	return s.updateImage(ctx, userID, localPath, "cover")
}

func (s *UserService) updateImage(ctx context.Context, userID int64, localPath, field string) (*dto.UserInfo, error) {
	if localPath == "" {
		return nil, apperror.InvalidArgument("图片文件不能为空")
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("用户不存在")
		}
		return nil, apperror.Internal("更新图片失败", err)
	}

	relayCtx, cancel := context.WithTimeout(ctx, relayTimeout)
	defer cancel()

	uploaded, err := s.media.Upload(relayCtx, localPath, infraMinio.KindImage)
	if err != nil {
		return nil, apperror.Internal("图片上传失败", err)
	}

	var oldObject string
	updates := map[string]interface{}{}
	if field == "avatar" {
		oldObject = user.AvatarObject
		updates["avatar_url"] = uploaded.URL
		updates["avatar_object"] = uploaded.ObjectName
	} else {
		oldObject = user.CoverObject
		updates["cover_url"] = uploaded.URL
		updates["cover_object"] = uploaded.ObjectName
	}

	updated, err := s.users.Update(userID, updates)
	if err != nil {
		return nil, apperror.Internal("更新图片失败", err)
	}

	if oldObject != "" {
		if err := s.media.Delete(relayCtx, oldObject); err != nil {
			logger.Warn("Delete stale media object failed",
				zap.String("object", oldObject), zap.Error(err))
		}
	}

	return toUserInfo(updated), nil
}

// GetChannelProfile 按用户名查询频道主页，计数与 is_subscribed 相对 viewerID 实时计算。
// viewerID 为 0 表示未登录。
func (s *UserService) GetChannelProfile(username string, viewerID int64) (*dto.ChannelProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.InvalidArgument("用户名不能为空")
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("频道不存在")
		}
		return nil, apperror.Internal("获取频道信息失败", err)
	}

	subscribers, err := s.subs.CountSubscribers(user.ID)
	if err != nil {
		return nil, apperror.Internal("获取频道信息失败", err)
	}
	subscribedTo, err := s.subs.CountSubscriptions(user.ID)
	if err != nil {
		return nil, apperror.Internal("获取频道信息失败", err)
	}

	isSubscribed := false
	if viewerID > 0 && viewerID != user.ID {
		isSubscribed, err = s.subs.Exists(viewerID, user.ID)
		if err != nil {
			return nil, apperror.Internal("获取频道信息失败", err)
		}
	}

	return &dto.ChannelProfile{
		ID:                        user.ID,
		Username:                  user.Username,
		FullName:                  user.FullName,
		AvatarURL:                 user.AvatarURL,
		CoverURL:                  user.CoverURL,
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
	}, nil
}

// GetWatchHistory 观看历史，按首次观看时间倒序
func (s *UserService) GetWatchHistory(userID int64, page, limit int) (*dto.HistoryListData, error) {
	skip := (page - 1) * limit
	entries, total, err := s.history.ListByUser(userID, skip, limit)
	if err != nil {
		return nil, apperror.Internal("获取观看历史失败", err)
	}

	data := &dto.HistoryListData{
		Entries:    make([]dto.HistoryEntry, 0, len(entries)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}
	for i := range entries {
		data.Entries = append(data.Entries, dto.HistoryEntry{
			Video:     toVideoInfo(&entries[i].Video, true),
			WatchedAt: entries[i].WatchedAt,
		})
	}
	return data, nil
}

// totalPages 向上取整的总页数
func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// toVideoInfo withOwner 为 true 时要求 video.Owner 已预加载
func toVideoInfo(video *model.Video, withOwner bool) dto.VideoInfo {
	info := dto.VideoInfo{
		ID:           video.ID,
		OwnerID:      video.OwnerID,
		Title:        video.Title,
		Description:  video.Description,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		Views:        video.Views,
		IsPublished:  video.IsPublished,
		CreatedAt:    video.CreatedAt,
	}
	if withOwner {
		info.Owner = &dto.OwnerBrief{
			ID:        video.Owner.ID,
			Username:  video.Owner.Username,
			FullName:  video.Owner.FullName,
			AvatarURL: video.Owner.AvatarURL,
		}
	}
	return info
}
