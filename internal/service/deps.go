package service

import (
	"context"

	infraKafka "clipstream/internal/infra/kafka"
	infraMinio "clipstream/internal/infra/minio"
	"clipstream/internal/model"
)

// 各 service 依赖的窄接口，由 repository 层实现。
// 读模型查询收敛在这些接口后面，换存储后端不影响 handler 层。

// UserStore 用户存取
type UserStore interface {
	GetByID(id int64) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	GetByUsernameOrEmail(identifier string) (*model.User, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	ExistsByEmail(email string, excludeID int64) (bool, error)
	Create(user *model.User) error
	Update(id int64, updates map[string]interface{}) (*model.User, error)
	UpdateRefreshToken(id int64, refreshToken *string) error
}

// VideoStore 视频存取
type VideoStore interface {
	GetByID(id int64) (*model.Video, error)
	GetByIDWithOwner(id int64) (*model.Video, error)
	GetByIDs(ids []int64) ([]model.Video, error)
	Create(video *model.Video) error
	Update(id int64, updates map[string]interface{}) (*model.Video, error)
	Delete(id int64) error
	TogglePublish(id int64) (bool, error)
	IncrementViews(id int64) error
	List(skip, limit int, ownerID *int64, publishedOnly bool, search *string, sortBy, sortType string) ([]model.Video, int64, error)
	CountByOwner(ownerID int64) (int64, error)
	SumViewsByOwner(ownerID int64) (int64, error)
}

// LikeStore 点赞存取
type LikeStore interface {
	ExistsForVideo(userID, videoID int64) (bool, error)
	ExistsForComment(userID, commentID int64) (bool, error)
	ExistsForTweet(userID, tweetID int64) (bool, error)
	CreateForVideo(userID, videoID int64) error
	CreateForComment(userID, commentID int64) error
	CreateForTweet(userID, tweetID int64) error
	DeleteForVideo(userID, videoID int64) (bool, error)
	DeleteForComment(userID, commentID int64) (bool, error)
	DeleteForTweet(userID, tweetID int64) (bool, error)
	CountByVideo(videoID int64) (int64, error)
	CountByComment(commentID int64) (int64, error)
	ListLikedVideos(userID int64, skip, limit int) ([]model.Like, int64, error)
	DeleteByVideo(videoID int64) error
	DeleteByComment(commentID int64) error
	CountOnVideosOfOwner(ownerID int64) (int64, error)
}

// SubscriptionStore 订阅关系存取
type SubscriptionStore interface {
	Exists(subscriberID, channelID int64) (bool, error)
	Create(subscriberID, channelID int64) error
	Delete(subscriberID, channelID int64) (bool, error)
	CountSubscribers(channelID int64) (int64, error)
	CountSubscriptions(subscriberID int64) (int64, error)
	ListSubscribers(channelID int64, skip, limit int) ([]model.User, int64, error)
	ListSubscribedChannels(subscriberID int64, skip, limit int) ([]model.User, int64, error)
}

// CommentStore 评论存取
type CommentStore interface {
	GetByID(id int64) (*model.Comment, error)
	Create(comment *model.Comment) error
	UpdateContent(id int64, content string) (*model.Comment, error)
	Delete(id int64) error
	DeleteByVideo(videoID int64) error
	ListByVideo(videoID int64, skip, limit int) ([]model.Comment, int64, error)
}

// TweetStore 动态存取
type TweetStore interface {
	GetByID(id int64) (*model.Tweet, error)
	Create(tweet *model.Tweet) error
	UpdateContent(id int64, content string) (*model.Tweet, error)
	Delete(id int64) error
	ListByOwner(ownerID int64, skip, limit int) ([]model.Tweet, int64, error)
}

// HistoryStore 观看历史存取
type HistoryStore interface {
	Add(userID, videoID int64) error
	ListByUser(userID int64, skip, limit int) ([]model.WatchHistory, int64, error)
	DeleteByVideo(videoID int64) error
}

// StatsStore 频道互动汇总存取
type StatsStore interface {
	AddDelta(channelID int64, day string, views, likes, subscriptions int64) error
	ListRecent(channelID int64, days int) ([]model.ChannelStat, error)
}

// MediaRelay 媒体中转：本地临时文件 -> 对象存储
type MediaRelay interface {
	Upload(ctx context.Context, localPath string, kind infraMinio.Kind) (*infraMinio.UploadResult, error)
	Delete(ctx context.Context, objectName string) error
}

// EventPublisher 互动事件发布
type EventPublisher interface {
	PublishEngagement(ctx context.Context, ev *infraKafka.EngagementEvent) error
}

// SearchIndex 已发布视频的全文索引
type SearchIndex interface {
	SyncVideo(ctx context.Context, video *model.Video, ownerName string) error
	RemoveVideo(ctx context.Context, videoID int64) error
	Search(ctx context.Context, query string, skip, limit int) ([]int64, int64, error)
}
