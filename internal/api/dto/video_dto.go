package dto

import "time"

// PublishVideoRequest 视频发布请求（multipart/form-data）
type PublishVideoRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"omitempty"`
}

// UpdateVideoRequest 视频更新请求（multipart/form-data，缩略图文件可选）
type UpdateVideoRequest struct {
	Title       *string `form:"title" binding:"omitempty,min=1,max=200"`
	Description *string `form:"description"`
}

// ListVideosRequest 视频列表查询参数
type ListVideosRequest struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
	OwnerID  *int64
}

// OwnerBrief 列表中嵌套的作者简要信息
type OwnerBrief struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// ChannelBrief 详情页作者信息，订阅字段相对请求者计算
type ChannelBrief struct {
	OwnerBrief
	SubscribersCount int64 `json:"subscribers_count"`
	IsSubscribed     bool  `json:"is_subscribed"`
}

// VideoInfo 视频信息
type VideoInfo struct {
	ID           int64       `json:"id"`
	OwnerID      int64       `json:"owner_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	VideoURL     string      `json:"video_url"`
	ThumbnailURL string      `json:"thumbnail_url"`
	Duration     float64     `json:"duration"`
	Views        int64       `json:"views"`
	IsPublished  bool        `json:"is_published"`
	CreatedAt    time.Time   `json:"created_at"`
	Owner        *OwnerBrief `json:"owner,omitempty"`
}

// VideoDetail 视频详情：点赞数与 is_liked 相对请求者计算
type VideoDetail struct {
	VideoInfo
	LikesCount int64         `json:"likes_count"`
	IsLiked    bool          `json:"is_liked"`
	Channel    *ChannelBrief `json:"channel,omitempty"`
}

// VideoListData 视频列表数据
type VideoListData struct {
	Videos     []VideoInfo `json:"videos"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int64       `json:"total_pages"`
}

// PublishStatus 发布开关结果
type PublishStatus struct {
	IsPublished bool `json:"is_published"`
}

// LikeStatus 点赞开关结果
type LikeStatus struct {
	IsLiked bool `json:"is_liked"`
}

// SubscribeStatus 订阅开关结果
type SubscribeStatus struct {
	IsSubscribed bool `json:"is_subscribed"`
}
