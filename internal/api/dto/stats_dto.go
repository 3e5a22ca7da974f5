package dto

// DailyStat 频道单日互动汇总
type DailyStat struct {
	Day           string `json:"day"`
	Views         int64  `json:"views"`
	Likes         int64  `json:"likes"`
	Subscriptions int64  `json:"subscriptions"`
}

// ChannelStatsData 频道统计：总量实时聚合，每日数据来自 worker 汇总表
type ChannelStatsData struct {
	TotalVideos      int64       `json:"total_videos"`
	TotalViews       int64       `json:"total_views"`
	TotalSubscribers int64       `json:"total_subscribers"`
	TotalLikes       int64       `json:"total_likes"`
	Daily            []DailyStat `json:"daily"`
}
