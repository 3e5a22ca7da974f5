package model

import "time"

// WatchHistory 观看历史：(user, video) 唯一，重复观看不追加新行
type WatchHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:观看记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_history_user_video;index:idx_history_user_id;comment:观看用户ID" json:"user_id"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_history_user_video;comment:被观看视频ID" json:"video_id"`
	WatchedAt time.Time `gorm:"autoCreateTime;index:idx_history_watched_at;comment:首次观看时间" json:"watched_at"`

	// 关联关系
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
