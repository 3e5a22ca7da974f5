package dto

import "time"

// UserInfo 用户公开信息（不含密码与刷新令牌）
type UserInfo struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	CoverURL  string    `json:"cover_url"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateAccountRequest 账号信息更新请求
type UpdateAccountRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
}

// ChannelProfile 频道主页：订阅计数与 is_subscribed 相对请求者计算
type ChannelProfile struct {
	ID                        int64  `json:"id"`
	Username                  string `json:"username"`
	FullName                  string `json:"full_name"`
	AvatarURL                 string `json:"avatar_url"`
	CoverURL                  string `json:"cover_url"`
	SubscribersCount          int64  `json:"subscribers_count"`
	ChannelsSubscribedToCount int64  `json:"channels_subscribed_to_count"`
	IsSubscribed              bool   `json:"is_subscribed"`
}

// HistoryEntry 观看历史条目
type HistoryEntry struct {
	Video     VideoInfo `json:"video"`
	WatchedAt time.Time `json:"watched_at"`
}

// HistoryListData 观看历史列表数据
type HistoryListData struct {
	Entries    []HistoryEntry `json:"entries"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int64          `json:"total_pages"`
}
