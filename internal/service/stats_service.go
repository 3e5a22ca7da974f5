package service

import (
	"clipstream/internal/api/dto"
	"clipstream/internal/apperror"
	infraKafka "clipstream/internal/infra/kafka"
)

// statsWindowDays 仪表盘展示的每日汇总天数
const statsWindowDays = 30

type StatsService struct {
	stats  StatsStore
	videos VideoStore
	likes  LikeStore
	subs   SubscriptionStore
}

func NewStatsService(stats StatsStore, videos VideoStore, likes LikeStore, subs SubscriptionStore) *StatsService {
	return &StatsService{stats: stats, videos: videos, likes: likes, subs: subs}
}

// GetChannelStats 频道仪表盘：总量从业务表实时聚合，每日曲线读 worker 维护的汇总表
func (s *StatsService) GetChannelStats(channelID int64) (*dto.ChannelStatsData, error) {
	totalVideos, err := s.videos.CountByOwner(channelID)
	if err != nil {
		return nil, apperror.Internal("获取频道统计失败", err)
	}
	totalViews, err := s.videos.SumViewsByOwner(channelID)
	if err != nil {
		return nil, apperror.Internal("获取频道统计失败", err)
	}
	totalSubscribers, err := s.subs.CountSubscribers(channelID)
	if err != nil {
		return nil, apperror.Internal("获取频道统计失败", err)
	}
	totalLikes, err := s.likes.CountOnVideosOfOwner(channelID)
	if err != nil {
		return nil, apperror.Internal("获取频道统计失败", err)
	}

	recent, err := s.stats.ListRecent(channelID, statsWindowDays)
	if err != nil {
		return nil, apperror.Internal("获取频道统计失败", err)
	}

	data := &dto.ChannelStatsData{
		TotalVideos:      totalVideos,
		TotalViews:       totalViews,
		TotalSubscribers: totalSubscribers,
		TotalLikes:       totalLikes,
		Daily:            make([]dto.DailyStat, 0, len(recent)),
	}
	for _, row := range recent {
		data.Daily = append(data.Daily, dto.DailyStat{
			Day:           row.Day,
			Views:         row.Views,
			Likes:         row.Likes,
			Subscriptions: row.Subscriptions,
		})
	}
	return data, nil
}

// ApplyEngagement 将一条互动事件累加到频道按日汇总；取消类事件记负值
func (s *StatsService) ApplyEngagement(ev *infraKafka.EngagementEvent) error {
	day := ev.At.UTC().Format("2006-01-02")

	var views, likes, subscriptions int64
	switch ev.Kind {
	case infraKafka.EngagementView:
		views = 1
	case infraKafka.EngagementLike:
		likes = 1
	case infraKafka.EngagementUnlike:
		likes = -1
	case infraKafka.EngagementSubscribe:
		subscriptions = 1
	case infraKafka.EngagementUnsubscribe:
		subscriptions = -1
	default:
		return nil
	}

	return s.stats.AddDelta(ev.ChannelID, day, views, likes, subscriptions)
}
