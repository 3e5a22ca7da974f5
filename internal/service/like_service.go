package service

import (
	"context"
	"errors"
	"time"

	"clipstream/internal/api/dto"
	"clipstream/internal/apperror"
	infraKafka "clipstream/internal/infra/kafka"
	"clipstream/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LikeService struct {
	likes    LikeStore
	videos   VideoStore
	comments CommentStore
	tweets   TweetStore
	events   EventPublisher
}

func NewLikeService(likes LikeStore, videos VideoStore, comments CommentStore,
	tweets TweetStore, events EventPublisher) *LikeService {
	return &LikeService{likes: likes, videos: videos, comments: comments, tweets: tweets, events: events}
}

// ToggleVideoLike 视频点赞开关：已点赞则取消，未点赞则点赞，返回切换后状态。
// 未发布视频对非作者不可见，也不可点赞。
func (s *LikeService) ToggleVideoLike(userID, videoID int64) (*dto.LikeStatus, error) {
	video, err := s.videos.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("视频不存在")
		}
		return nil, apperror.Internal("点赞操作失败", err)
	}
	if !video.IsPublished && video.OwnerID != userID {
		return nil, apperror.NotFound("视频不存在")
	}

	liked, err := s.toggle(
		func() (bool, error) { return s.likes.DeleteForVideo(userID, videoID) },
		func() error { return s.likes.CreateForVideo(userID, videoID) },
	)
	if err != nil {
		return nil, err
	}

	kind := infraKafka.EngagementUnlike
	if liked {
		kind = infraKafka.EngagementLike
	}
	s.publishEngagement(kind, video.OwnerID, videoID, userID)

	return &dto.LikeStatus{IsLiked: liked}, nil
}

// ToggleCommentLike 评论点赞开关
func (s *LikeService) ToggleCommentLike(userID, commentID int64) (*dto.LikeStatus, error) {
	if _, err := s.comments.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("评论不存在")
		}
		return nil, apperror.Internal("点赞操作失败", err)
	}

	liked, err := s.toggle(
		func() (bool, error) { return s.likes.DeleteForComment(userID, commentID) },
		func() error { return s.likes.CreateForComment(userID, commentID) },
	)
	if err != nil {
		return nil, err
	}
	return &dto.LikeStatus{IsLiked: liked}, nil
}

// ToggleTweetLike 动态点赞开关
func (s *LikeService) ToggleTweetLike(userID, tweetID int64) (*dto.LikeStatus, error) {
	if _, err := s.tweets.GetByID(tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("动态不存在")
		}
		return nil, apperror.Internal("点赞操作失败", err)
	}

	liked, err := s.toggle(
		func() (bool, error) { return s.likes.DeleteForTweet(userID, tweetID) },
		func() error { return s.likes.CreateForTweet(userID, tweetID) },
	)
	if err != nil {
		return nil, err
	}
	return &dto.LikeStatus{IsLiked: liked}, nil
}

// toggle 先尝试删除，删不到说明未点赞，转为创建
func (s *LikeService) toggle(remove func() (bool, error), create func() error) (bool, error) {
	deleted, err := remove()
	if err != nil {
		return false, apperror.Internal("点赞操作失败", err)
	}
	if deleted {
		return false, nil
	}
	if err := create(); err != nil {
		// 并发下唯一索引冲突视为已点赞
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, apperror.Internal("点赞操作失败", err)
	}
	return true, nil
}

// GetLikedVideos 当前用户点赞过的视频，按点赞时间倒序
func (s *LikeService) GetLikedVideos(userID int64, page, limit int) (*dto.VideoListData, error) {
	skip := (page - 1) * limit
	likes, total, err := s.likes.ListLikedVideos(userID, skip, limit)
	if err != nil {
		return nil, apperror.Internal("获取点赞视频失败", err)
	}

	data := &dto.VideoListData{
		Videos:     make([]dto.VideoInfo, 0, len(likes)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}
	for i := range likes {
		if likes[i].Video == nil {
			continue
		}
		data.Videos = append(data.Videos, toVideoInfo(likes[i].Video, true))
	}
	return data, nil
}

func (s *LikeService) publishEngagement(kind string, channelID, videoID, actorID int64) {
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
