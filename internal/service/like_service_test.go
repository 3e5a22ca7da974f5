package service

import (
	"testing"

	"clipstream/internal/apperror"
	infraKafka "clipstream/internal/infra/kafka"
	"clipstream/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestLikeService() (*LikeService, *fakeVideoStore, *fakeCommentStore, *fakeTweetStore, *fakePublisher) {
	videos := newFakeVideoStore()
	comments := newFakeCommentStore()
	tweets := newFakeTweetStore()
	events := &fakePublisher{}
	svc := NewLikeService(newFakeLikeStore(), videos, comments, tweets, events)
	return svc, videos, comments, tweets, events
}

func TestToggleVideoLike_OnThenOff(t *testing.T) {
	svc, videos, _, _, events := newTestLikeService()
	require.NoError(t, videos.Create(&model.Video{OwnerID: 1, Title: "demo", IsPublished: true}))

	status, err := svc.ToggleVideoLike(2, 1)
	require.NoError(t, err)
	assert.True(t, status.IsLiked)

	status, err = svc.ToggleVideoLike(2, 1)
	require.NoError(t, err)
	assert.False(t, status.IsLiked)

	// 两次切换分别发出 like 与 unlike 事件
	require.Len(t, events.events, 2)
	assert.Equal(t, infraKafka.EngagementLike, events.events[0].Kind)
	assert.Equal(t, infraKafka.EngagementUnlike, events.events[1].Kind)
}

func TestToggleVideoLike_UnknownVideo(t *testing.T) {
	svc, _, _, _, _ := newTestLikeService()

	_, err := svc.ToggleVideoLike(2, 99)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestToggleVideoLike_UnpublishedHiddenFromOthers(t *testing.T) {
	svc, videos, _, _, _ := newTestLikeService()
	require.NoError(t, videos.Create(&model.Video{OwnerID: 1, Title: "draft", IsPublished: false}))

	// 非作者点赞未发布视频，与不存在一视同仁
	_, err := svc.ToggleVideoLike(2, 1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// 作者本人可以点赞自己的草稿
	status, err := svc.ToggleVideoLike(1, 1)
	require.NoError(t, err)
	assert.True(t, status.IsLiked)
}

func TestToggleVideoLike_ConcurrentCreateTreatedAsLiked(t *testing.T) {
	videos := newFakeVideoStore()
	likes := newFakeLikeStore()
	svc := NewLikeService(likes, videos, newFakeCommentStore(), newFakeTweetStore(), &fakePublisher{})
	require.NoError(t, videos.Create(&model.Video{OwnerID: 1, Title: "demo", IsPublished: true}))

	// 删除没删到、创建又撞上唯一索引：另一请求抢先点了赞，结果仍按已点赞返回
	likes.createErr = gorm.ErrDuplicatedKey
	status, err := svc.ToggleVideoLike(2, 1)
	require.NoError(t, err)
	assert.True(t, status.IsLiked)
}

func TestToggleCommentLike(t *testing.T) {
	svc, _, comments, _, _ := newTestLikeService()
	require.NoError(t, comments.Create(&model.Comment{VideoID: 1, OwnerID: 1, Content: "nice"}))

	status, err := svc.ToggleCommentLike(2, 1)
	require.NoError(t, err)
	assert.True(t, status.IsLiked)

	status, err = svc.ToggleCommentLike(2, 1)
	require.NoError(t, err)
	assert.False(t, status.IsLiked)
}

func TestToggleTweetLike_UnknownTweet(t *testing.T) {
	svc, _, _, _, _ := newTestLikeService()

	_, err := svc.ToggleTweetLike(2, 42)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
