package dto

// ChannelUserInfo 订阅列表中的用户简要信息
type ChannelUserInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// SubscriptionListData 订阅者/已订阅频道列表数据
type SubscriptionListData struct {
	Users      []ChannelUserInfo `json:"users"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int64             `json:"total_pages"`
}
