package model

import "time"

// ChannelStat 频道按日互动汇总，由 worker 消费互动事件维护
type ChannelStat struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;comment:汇总记录ID" json:"id"`
	ChannelID     int64     `gorm:"not null;uniqueIndex:uq_stats_channel_day;comment:频道用户ID" json:"channel_id"`
	Day           string    `gorm:"size:10;not null;uniqueIndex:uq_stats_channel_day;comment:日期（YYYY-MM-DD）" json:"day"`
	Views         int64     `gorm:"not null;default:0;comment:当日播放次数" json:"views"`
	Likes         int64     `gorm:"not null;default:0;comment:当日净点赞数" json:"likes"`
	Subscriptions int64     `gorm:"not null;default:0;comment:当日净订阅数" json:"subscriptions"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (ChannelStat) TableName() string {
	return "channel_stats"
}
