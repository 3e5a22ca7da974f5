package service

import (
	"testing"
	"time"

	infraKafka "clipstream/internal/infra/kafka"
	"clipstream/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStatsService(t *testing.T) (*StatsService, *fakeVideoStore, *fakeStatsStore) {
	t.Helper()
	stats := newFakeStatsStore()
	videos := newFakeVideoStore()
	svc := NewStatsService(stats, videos, newFakeLikeStore(), newFakeSubscriptionStore())
	return svc, videos, stats
}

func TestApplyEngagement_RollsUpByDay(t *testing.T) {
	svc, _, stats := newTestStatsService(t)

	day := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	events := []*infraKafka.EngagementEvent{
		{Kind: infraKafka.EngagementView, ChannelID: 1, At: day},
		{Kind: infraKafka.EngagementView, ChannelID: 1, At: day.Add(time.Hour)},
		{Kind: infraKafka.EngagementLike, ChannelID: 1, At: day},
		{Kind: infraKafka.EngagementUnlike, ChannelID: 1, At: day},
		{Kind: infraKafka.EngagementSubscribe, ChannelID: 1, At: day},
	}
	for _, ev := range events {
		require.NoError(t, svc.ApplyEngagement(ev))
	}

	rows, err := stats.ListRecent(1, 30)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-08-30", rows[0].Day)
	assert.Equal(t, int64(2), rows[0].Views)
	// like 与 unlike 相互抵消，净值为 0
	assert.Equal(t, int64(0), rows[0].Likes)
	assert.Equal(t, int64(1), rows[0].Subscriptions)
}

func TestApplyEngagement_UnknownKindIgnored(t *testing.T) {
	svc, _, stats := newTestStatsService(t)

	require.NoError(t, svc.ApplyEngagement(&infraKafka.EngagementEvent{Kind: "bogus", ChannelID: 1, At: time.Now()}))

	rows, err := stats.ListRecent(1, 30)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetChannelStats_Totals(t *testing.T) {
	svc, videos, _ := newTestStatsService(t)

	require.NoError(t, videos.Create(&model.Video{OwnerID: 1, Title: "a", Views: 10, IsPublished: true}))
	require.NoError(t, videos.Create(&model.Video{OwnerID: 1, Title: "b", Views: 5, IsPublished: false}))
	require.NoError(t, videos.Create(&model.Video{OwnerID: 2, Title: "c", Views: 100, IsPublished: true}))

	data, err := svc.GetChannelStats(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.TotalVideos)
	assert.Equal(t, int64(15), data.TotalViews)
}
