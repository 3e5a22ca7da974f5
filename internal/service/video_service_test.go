package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"clipstream/internal/api/dto"
	"clipstream/internal/apperror"
	infraKafka "clipstream/internal/infra/kafka"
	"clipstream/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type videoServiceFixture struct {
	svc     *VideoService
	videos  *fakeVideoStore
	likes   *fakeLikeStore
	subs    *fakeSubscriptionStore
	history *fakeHistoryStore
	relay   *fakeRelay
	events  *fakePublisher
	search  *fakeSearchIndex
}

func newVideoServiceFixture() *videoServiceFixture {
	f := &videoServiceFixture{
		videos:  newFakeVideoStore(),
		likes:   newFakeLikeStore(),
		subs:    newFakeSubscriptionStore(),
		history: newFakeHistoryStore(),
		relay:   &fakeRelay{duration: 12.5},
		events:  &fakePublisher{},
		search:  newFakeSearchIndex(),
	}
	f.svc = NewVideoService(f.videos, f.likes, f.subs, newFakeCommentStore(), f.history, f.relay, f.events, f.search)
	f.videos.owners[1] = &model.User{ID: 1, Username: "alice", FullName: "Alice"}
	return f
}

func (f *videoServiceFixture) addVideo(t *testing.T, ownerID int64, title string, published bool) *model.Video {
	t.Helper()
	video := &model.Video{
		OwnerID:         ownerID,
		Title:           title,
		VideoObject:     "video-" + title,
		ThumbnailObject: "thumb-" + title,
		IsPublished:     published,
	}
	require.NoError(t, f.videos.Create(video))
	return video
}

func TestPublish_SetsDurationAndUnpublished(t *testing.T) {
	f := newVideoServiceFixture()

	info, err := f.svc.Publish(context.Background(), 1, &dto.PublishVideoRequest{Title: "demo"}, "/tmp/v.mp4", "/tmp/t.png")
	require.NoError(t, err)

	assert.Equal(t, 12.5, info.Duration)
	assert.False(t, info.IsPublished)
	assert.Len(t, f.relay.uploads, 2)
}

func TestPublish_RequiresBothFiles(t *testing.T) {
	f := newVideoServiceFixture()

	_, err := f.svc.Publish(context.Background(), 1, &dto.PublishVideoRequest{Title: "demo"}, "", "/tmp/t.png")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = f.svc.Publish(context.Background(), 1, &dto.PublishVideoRequest{Title: "demo"}, "/tmp/v.mp4", "")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestGetDetail_IncrementsViewsAndRecordsHistoryOnce(t *testing.T) {
	f := newVideoServiceFixture()
	video := f.addVideo(t, 1, "demo", true)

	detail, err := f.svc.GetDetail(context.Background(), video.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Views)

	detail, err = f.svc.GetDetail(context.Background(), video.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Views)

	// 重复观看只保留一条历史
	assert.Len(t, f.history.entries, 1)

	// 每次观看都发出 view 事件
	require.Len(t, f.events.events, 2)
	assert.Equal(t, infraKafka.EngagementView, f.events.events[0].Kind)
}

func TestGetDetail_AnonymousViewerDoesNotCount(t *testing.T) {
	f := newVideoServiceFixture()
	video := f.addVideo(t, 1, "demo", true)

	detail, err := f.svc.GetDetail(context.Background(), video.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), detail.Views)
	assert.Empty(t, f.history.entries)
	assert.Empty(t, f.events.events)
}

func TestGetDetail_ViewerRelativeFields(t *testing.T) {
	f := newVideoServiceFixture()
	video := f.addVideo(t, 1, "demo", true)

	require.NoError(t, f.likes.CreateForVideo(2, video.ID))
	require.NoError(t, f.likes.CreateForVideo(3, video.ID))
	require.NoError(t, f.subs.Create(2, 1))

	detail, err := f.svc.GetDetail(context.Background(), video.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.LikesCount)
	assert.True(t, detail.IsLiked)
	require.NotNil(t, detail.Channel)
	assert.Equal(t, int64(1), detail.Channel.SubscribersCount)
	assert.True(t, detail.Channel.IsSubscribed)

	// 另一个未订阅未点赞的观众看到的是自己的状态
	detail, err = f.svc.GetDetail(context.Background(), video.ID, 4)
	require.NoError(t, err)
	assert.False(t, detail.IsLiked)
	assert.False(t, detail.Channel.IsSubscribed)
}

func TestGetDetail_UnpublishedOnlyVisibleToOwner(t *testing.T) {
	f := newVideoServiceFixture()
	video := f.addVideo(t, 1, "draft", false)

	_, err := f.svc.GetDetail(context.Background(), video.ID, 2)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	detail, err := f.svc.GetDetail(context.Background(), video.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "draft", detail.Title)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	f := newVideoServiceFixture()
	video := f.addVideo(t, 1, "demo", true)

	title := "renamed"
	_, err := f.svc.Update(context.Background(), video.ID, 2, &dto.UpdateVideoRequest{Title: &title}, "")
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	info, err := f.svc.Update(context.Background(), video.ID, 1, &dto.UpdateVideoRequest{Title: &title}, "")
	require.NoError(t, err)
	assert.Equal(t, "renamed", info.Title)
}

func TestUpdate_ReplacesThumbnail(t *testing.T) {
	f := newVideoServiceFixture()
	video := f.addVideo(t, 1, "demo", true)

	_, err := f.svc.Update(context.Background(), video.ID, 1, &dto.UpdateVideoRequest{}, "/tmp/new-thumb.png")
	require.NoError(t, err)

	// 旧缩略图对象被清理
	assert.Contains(t, f.relay.deleted, "thumb-demo")
}

func TestDelete_CascadesDerivedData(t *testing.T) {
	f := newVideoServiceFixture()
	video := f.addVideo(t, 1, "demo", true)

	require.NoError(t, f.likes.CreateForVideo(2, video.ID))
	require.NoError(t, f.history.Add(2, video.ID))

	require.NoError(t, f.svc.Delete(context.Background(), video.ID, 1))

	_, err := f.videos.GetByID(video.ID)
	assert.Error(t, err)
	assert.Empty(t, f.likes.likes)
	assert.Empty(t, f.history.entries)
	assert.Contains(t, f.removedObjects(), "video-demo")
	assert.Contains(t, f.removedObjects(), "thumb-demo")
	assert.Contains(t, f.search.removed, video.ID)
}

func (f *videoServiceFixture) removedObjects() []string {
	return f.relay.deleted
}

func TestTogglePublish_SyncsSearchIndex(t *testing.T) {
	f := newVideoServiceFixture()
	video := f.addVideo(t, 1, "demo", false)

	status, err := f.svc.TogglePublish(context.Background(), video.ID, 1)
	require.NoError(t, err)
	assert.True(t, status.IsPublished)
	assert.Contains(t, f.search.synced, video.ID)

	status, err = f.svc.TogglePublish(context.Background(), video.ID, 1)
	require.NoError(t, err)
	assert.False(t, status.IsPublished)
	assert.NotContains(t, f.search.synced, video.ID)
}

func TestList_PaginationWindow(t *testing.T) {
	f := newVideoServiceFixture()
	for i := 1; i <= 12; i++ {
		f.addVideo(t, 1, fmt.Sprintf("video-%02d", i), true)
	}

	data, err := f.svc.List(context.Background(), &dto.ListVideosRequest{Page: 2, Limit: 5}, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(12), data.Total)
	assert.Equal(t, int64(3), data.TotalPages)
	require.Len(t, data.Videos, 5)
	assert.Equal(t, "video-06", data.Videos[0].Title)
	assert.Equal(t, "video-10", data.Videos[4].Title)
}

func TestList_HidesUnpublishedExceptForOwner(t *testing.T) {
	f := newVideoServiceFixture()
	f.addVideo(t, 1, "published", true)
	f.addVideo(t, 1, "draft", false)

	data, err := f.svc.List(context.Background(), &dto.ListVideosRequest{Page: 1, Limit: 10}, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), data.Total)

	ownerID := int64(1)
	data, err = f.svc.List(context.Background(), &dto.ListVideosRequest{Page: 1, Limit: 10, OwnerID: &ownerID}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.Total)
}

func TestList_SearchFallsBackToDatabase(t *testing.T) {
	f := newVideoServiceFixture()
	f.addVideo(t, 1, "golang tutorial", true)
	f.addVideo(t, 1, "cooking show", true)
	f.search.searchErr = errors.New("es down")

	data, err := f.svc.List(context.Background(), &dto.ListVideosRequest{Page: 1, Limit: 10, Query: "golang"}, 0)
	require.NoError(t, err)
	require.Len(t, data.Videos, 1)
	assert.Equal(t, "golang tutorial", data.Videos[0].Title)
}

func TestList_SearchUsesIndexOrder(t *testing.T) {
	f := newVideoServiceFixture()
	first := f.addVideo(t, 1, "golang basics", true)
	second := f.addVideo(t, 1, "advanced golang", true)
	f.search.hits = []int64{second.ID, first.ID}
	f.search.hitsTotal = 2

	data, err := f.svc.List(context.Background(), &dto.ListVideosRequest{Page: 1, Limit: 10, Query: "golang"}, 0)
	require.NoError(t, err)
	require.Len(t, data.Videos, 2)
	assert.Equal(t, "advanced golang", data.Videos[0].Title)
	assert.Equal(t, "golang basics", data.Videos[1].Title)
}
