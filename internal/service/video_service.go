package service

import (
	"context"
	"errors"
	"time"

	"clipstream/internal/api/dto"
	"clipstream/internal/apperror"
	infraKafka "clipstream/internal/infra/kafka"
	infraMinio "clipstream/internal/infra/minio"
	"clipstream/internal/model"
	"clipstream/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const eventPublishTimeout = 2 * time.Second

type VideoService struct {
	videos   VideoStore
	likes    LikeStore
	subs     SubscriptionStore
	comments CommentStore
	history  HistoryStore
	media    MediaRelay
	events   EventPublisher
	search   SearchIndex
}

func NewVideoService(videos VideoStore, likes LikeStore, subs SubscriptionStore,
	comments CommentStore, history HistoryStore, media MediaRelay,
	events EventPublisher, search SearchIndex) *VideoService {
	return &VideoService{
		videos: videos, likes: likes, subs: subs, comments: comments,
		history: history, media: media, events: events, search: search,
	}
}

// Publish 发布视频：视频与缩略图均为必传，时长由中转层探测。
// 新视频默认未发布，需要显式切换发布状态后才对他人可见。
func (s *VideoService) Publish(ctx context.Context, ownerID int64, req *dto.PublishVideoRequest, videoPath, thumbPath string) (*dto.VideoInfo, error) {
	if videoPath == "" {
		return nil, apperror.InvalidArgument("视频文件不能为空")
	}
	if thumbPath == "" {
		return nil, apperror.InvalidArgument("缩略图文件不能为空")
	}

	relayCtx, cancel := context.WithTimeout(ctx, relayTimeout)
	defer cancel()

	uploadedVideo, err := s.media.Upload(relayCtx, videoPath, infraMinio.KindVideo)
	if err != nil {
		return nil, apperror.Internal("视频上传失败", err)
	}
	uploadedThumb, err := s.media.Upload(relayCtx, thumbPath, infraMinio.KindImage)
	if err != nil {
		return nil, apperror.Internal("缩略图上传失败", err)
	}

	video := &model.Video{
		OwnerID:         ownerID,
		Title:           req.Title,
		Description:     req.Description,
		VideoURL:        uploadedVideo.URL,
		VideoObject:     uploadedVideo.ObjectName,
		ThumbnailURL:    uploadedThumb.URL,
		ThumbnailObject: uploadedThumb.ObjectName,
		Duration:        uploadedVideo.Duration,
		IsPublished:     false,
	}
	if err := s.videos.Create(video); err != nil {
		return nil, apperror.Internal("视频保存失败", err)
	}

	info := toVideoInfo(video, false)
	return &info, nil
}

// GetDetail 视频详情：未发布视频仅作者可见。
// 登录用户访问时播放量 +1、写入观看历史（重复观看不追加）、发布 view 事件；
// 点赞数、is_liked、订阅数、is_subscribed 相对请求者实时计算，不做缓存。
func (s *VideoService) GetDetail(ctx context.Context, videoID, viewerID int64) (*dto.VideoDetail, error) {
	video, err := s.videos.GetByIDWithOwner(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("视频不存在")
		}
		return nil, apperror.Internal("获取视频失败", err)
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, apperror.NotFound("视频不存在")
	}

	if viewerID > 0 {
		if err := s.videos.IncrementViews(videoID); err != nil {
			logger.Warn("Increment views failed", zap.Int64("video_id", videoID), zap.Error(err))
		} else {
			video.Views++
		}
		if err := s.history.Add(viewerID, videoID); err != nil {
			logger.Warn("Record watch history failed",
				zap.Int64("user_id", viewerID), zap.Int64("video_id", videoID), zap.Error(err))
		}
		s.publishEngagement(infraKafka.EngagementView, video.OwnerID, videoID, viewerID)
	}

	likesCount, err := s.likes.CountByVideo(videoID)
	if err != nil {
		return nil, apperror.Internal("获取视频失败", err)
	}
	subscribersCount, err := s.subs.CountSubscribers(video.OwnerID)
	if err != nil {
		return nil, apperror.Internal("获取视频失败", err)
	}

	isLiked, isSubscribed := false, false
	if viewerID > 0 {
		isLiked, err = s.likes.ExistsForVideo(viewerID, videoID)
		if err != nil {
			return nil, apperror.Internal("获取视频失败", err)
		}
		if viewerID != video.OwnerID {
			isSubscribed, err = s.subs.Exists(viewerID, video.OwnerID)
			if err != nil {
				return nil, apperror.Internal("获取视频失败", err)
			}
		}
	}

	return &dto.VideoDetail{
		VideoInfo:  toVideoInfo(video, false),
		LikesCount: likesCount,
		IsLiked:    isLiked,
		Channel: &dto.ChannelBrief{
			OwnerBrief: dto.OwnerBrief{
				ID:        video.Owner.ID,
				Username:  video.Owner.Username,
				FullName:  video.Owner.FullName,
				AvatarURL: video.Owner.AvatarURL,
			},
			SubscribersCount: subscribersCount,
			IsSubscribed:     isSubscribed,
		},
	}, nil
}

// Update 更新视频标题/描述/缩略图，仅作者可操作；换图成功后删除旧缩略图对象
func (s *VideoService) Update(ctx context.Context, videoID, ownerID int64, req *dto.UpdateVideoRequest, thumbPath string) (*dto.VideoInfo, error) {
	video, err := s.ownedVideo(videoID, ownerID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	oldThumb := ""
	if thumbPath != "" {
		relayCtx, cancel := context.WithTimeout(ctx, relayTimeout)
		defer cancel()

		uploaded, err := s.media.Upload(relayCtx, thumbPath, infraMinio.KindImage)
		if err != nil {
			return nil, apperror.Internal("缩略图上传失败", err)
		}
		oldThumb = video.ThumbnailObject
		updates["thumbnail_url"] = uploaded.URL
		updates["thumbnail_object"] = uploaded.ObjectName
	}

	if len(updates) == 0 {
		return nil, apperror.InvalidArgument("没有需要更新的字段")
	}

	updated, err := s.videos.Update(videoID, updates)
	if err != nil {
		return nil, apperror.Internal("视频更新失败", err)
	}

	if oldThumb != "" {
		s.deleteObject(ctx, oldThumb)
	}
	if updated.IsPublished {
		s.syncSearchIndex(ctx, updated)
	}

	info := toVideoInfo(updated, false)
	return &info, nil
}

// Delete 删除视频及其派生数据：点赞、评论（含评论上的点赞）、观看历史、
// 搜索索引文档、对象存储中的媒体文件。仅作者可操作。
func (s *VideoService) Delete(ctx context.Context, videoID, ownerID int64) error {
	video, err := s.ownedVideo(videoID, ownerID)
	if err != nil {
		return err
	}

	if err := s.likes.DeleteByVideo(videoID); err != nil {
		return apperror.Internal("视频删除失败", err)
	}
	if err := s.comments.DeleteByVideo(videoID); err != nil {
		return apperror.Internal("视频删除失败", err)
	}
	if err := s.history.DeleteByVideo(videoID); err != nil {
		return apperror.Internal("视频删除失败", err)
	}
	if err := s.videos.Delete(videoID); err != nil {
		return apperror.Internal("视频删除失败", err)
	}

	searchCtx, cancel := context.WithTimeout(ctx, eventPublishTimeout)
	defer cancel()
	if err := s.search.RemoveVideo(searchCtx, videoID); err != nil {
		logger.Warn("Remove video from search index failed", zap.Int64("video_id", videoID), zap.Error(err))
	}

	s.deleteObject(ctx, video.VideoObject)
	s.deleteObject(ctx, video.ThumbnailObject)
	return nil
}

// TogglePublish 切换发布状态并返回新值；发布时写入搜索索引，下架时移除
func (s *VideoService) TogglePublish(ctx context.Context, videoID, ownerID int64) (*dto.PublishStatus, error) {
	video, err := s.ownedVideo(videoID, ownerID)
	if err != nil {
		return nil, err
	}

	published, err := s.videos.TogglePublish(videoID)
	if err != nil {
		return nil, apperror.Internal("切换发布状态失败", err)
	}
	video.IsPublished = published

	if published {
		s.syncSearchIndex(ctx, video)
	} else {
		searchCtx, cancel := context.WithTimeout(ctx, eventPublishTimeout)
		defer cancel()
		if err := s.search.RemoveVideo(searchCtx, videoID); err != nil {
			logger.Warn("Remove video from search index failed", zap.Int64("video_id", videoID), zap.Error(err))
		}
	}

	return &dto.PublishStatus{IsPublished: published}, nil
}

// List 视频列表：带搜索词时优先走全文索引，索引不可用则回退数据库模糊匹配。
// 只返回已发布视频，除非按作者过滤且作者即请求者本人。
func (s *VideoService) List(ctx context.Context, req *dto.ListVideosRequest, viewerID int64) (*dto.VideoListData, error) {
	publishedOnly := true
	if req.OwnerID != nil && *req.OwnerID == viewerID && viewerID > 0 {
		publishedOnly = false
	}
	skip := (req.Page - 1) * req.Limit

	if req.Query != "" && req.OwnerID == nil {
		if data, ok := s.listFromSearchIndex(ctx, req, skip); ok {
			return data, nil
		}
	}

	var search *string
	if req.Query != "" {
		search = &req.Query
	}
	videos, total, err := s.videos.List(skip, req.Limit, req.OwnerID, publishedOnly, search, req.SortBy, req.SortType)
	if err != nil {
		return nil, apperror.Internal("获取视频列表失败", err)
	}
	return s.buildListData(videos, total, req.Page, req.Limit), nil
}

// listFromSearchIndex 通过全文索引查询，失败时返回 ok=false 由调用方回退
func (s *VideoService) listFromSearchIndex(ctx context.Context, req *dto.ListVideosRequest, skip int) (*dto.VideoListData, bool) {
	searchCtx, cancel := context.WithTimeout(ctx, eventPublishTimeout)
	defer cancel()

	ids, total, err := s.search.Search(searchCtx, req.Query, skip, req.Limit)
	if err != nil {
		logger.Warn("Search index query failed, falling back to database", zap.Error(err))
		return nil, false
	}
	if len(ids) == 0 {
		return s.buildListData(nil, total, req.Page, req.Limit), true
	}

	videos, err := s.videos.GetByIDs(ids)
	if err != nil {
		logger.Warn("Load videos by search hits failed, falling back to database", zap.Error(err))
		return nil, false
	}

	// 保持索引返回的相关度顺序，过滤掉期间被下架的视频
	byID := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}
	ordered := make([]model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok && v.IsPublished {
			ordered = append(ordered, *v)
		}
	}
	return s.buildListData(ordered, total, req.Page, req.Limit), true
}

func (s *VideoService) buildListData(videos []model.Video, total int64, page, limit int) *dto.VideoListData {
	data := &dto.VideoListData{
		Videos:     make([]dto.VideoInfo, 0, len(videos)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}
	for i := range videos {
		data.Videos = append(data.Videos, toVideoInfo(&videos[i], true))
	}
	return data
}

// ownedVideo 加载视频并校验请求者为作者
func (s *VideoService) ownedVideo(videoID, ownerID int64) (*model.Video, error) {
	video, err := s.videos.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("视频不存在")
		}
		return nil, apperror.Internal("获取视频失败", err)
	}
	if video.OwnerID != ownerID {
		return nil, apperror.Forbidden("无权操作他人的视频")
	}
	return video, nil
}

// syncSearchIndex 将视频写入全文索引，失败只记日志不影响主流程
func (s *VideoService) syncSearchIndex(ctx context.Context, video *model.Video) {
	searchCtx, cancel := context.WithTimeout(ctx, eventPublishTimeout)
	defer cancel()

	ownerName := video.Owner.Username
	if ownerName == "" {
		if full, err := s.videos.GetByIDWithOwner(video.ID); err == nil {
			ownerName = full.Owner.Username
		}
	}
	if err := s.search.SyncVideo(searchCtx, video, ownerName); err != nil {
		logger.Warn("Sync video to search index failed", zap.Int64("video_id", video.ID), zap.Error(err))
	}
}

// deleteObject 删除对象存储中的媒体文件，失败只记日志
func (s *VideoService) deleteObject(ctx context.Context, objectName string) {
	if objectName == "" {
		return
	}
	relayCtx, cancel := context.WithTimeout(ctx, relayTimeout)
	defer cancel()
	if err := s.media.Delete(relayCtx, objectName); err != nil {
		logger.Warn("Delete media object failed", zap.String("object", objectName), zap.Error(err))
	}
}

// publishEngagement 发布互动事件，发送失败只记日志（不阻塞主流程）
func (s *VideoService) publishEngagement(kind string, channelID, videoID, actorID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), eventPublishTimeout)
	defer cancel()
	ev := &infraKafka.EngagementEvent{
		Kind:      kind,
		ChannelID: channelID,
		VideoID:   videoID,
		ActorID:   actorID,
		At:        time.Now(),
	}
	if err := s.events.PublishEngagement(ctx, ev); err != nil {
		logger.Warn("Publish engagement event failed", zap.String("kind", kind), zap.Error(err))
	}
}
