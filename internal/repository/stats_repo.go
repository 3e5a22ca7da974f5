package repository

import (
	"clipstream/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// AddDelta 按 (channel, day) 累加互动计数，不存在则插入
func (r *StatsRepository) AddDelta(channelID int64, day string, views, likes, subscriptions int64) error {
	stat := &model.ChannelStat{
		ChannelID:     channelID,
		Day:           day,
		Views:         views,
		Likes:         likes,
		Subscriptions: subscriptions,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "channel_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"views":         gorm.Expr("channel_stats.views + ?", views),
			"likes":         gorm.Expr("channel_stats.likes + ?", likes),
			"subscriptions": gorm.Expr("channel_stats.subscriptions + ?", subscriptions),
		}),
	}).Create(stat).Error
}

// ListRecent 频道最近 days 天的汇总（按日期倒序）
func (r *StatsRepository) ListRecent(channelID int64, days int) ([]model.ChannelStat, error) {
	var stats []model.ChannelStat
	err := r.db.Where("channel_id = ?", channelID).
		Order("day DESC").Limit(days).Find(&stats).Error
	return stats, err
}
