package service

import (
	"testing"

	"clipstream/internal/api/dto"
	"clipstream/internal/apperror"
	"clipstream/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommentService(t *testing.T) (*CommentService, *fakeVideoStore, *fakeLikeStore) {
	t.Helper()
	videos := newFakeVideoStore()
	likes := newFakeLikeStore()
	require.NoError(t, videos.Create(&model.Video{OwnerID: 1, Title: "demo", IsPublished: true}))
	return NewCommentService(newFakeCommentStore(), videos, likes), videos, likes
}

func TestCommentCreateAndList(t *testing.T) {
	svc, _, likes := newTestCommentService(t)

	info, err := svc.Create(2, 1, &dto.CreateCommentRequest{Content: "first"})
	require.NoError(t, err)
	assert.Equal(t, "first", info.Content)

	_, err = svc.Create(3, 1, &dto.CreateCommentRequest{Content: "second"})
	require.NoError(t, err)

	require.NoError(t, likes.CreateForComment(3, info.ID))

	data, err := svc.ListByVideo(1, 3, 1, 10)
	require.NoError(t, err)
	require.Len(t, data.Comments, 2)
	assert.Equal(t, int64(2), data.Total)

	// like 字段相对请求者计算
	assert.Equal(t, int64(1), data.Comments[0].LikesCount)
	assert.True(t, data.Comments[0].IsLiked)
	assert.False(t, data.Comments[1].IsLiked)
}

func TestCommentCreate_UnknownVideo(t *testing.T) {
	svc, _, _ := newTestCommentService(t)

	_, err := svc.Create(2, 99, &dto.CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCommentUpdate_OwnerOnly(t *testing.T) {
	svc, _, _ := newTestCommentService(t)

	info, err := svc.Create(2, 1, &dto.CreateCommentRequest{Content: "orig"})
	require.NoError(t, err)

	_, err = svc.Update(3, info.ID, &dto.UpdateCommentRequest{Content: "hijack"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := svc.Update(2, info.ID, &dto.UpdateCommentRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestCommentDelete_RemovesLikes(t *testing.T) {
	svc, _, likes := newTestCommentService(t)

	info, err := svc.Create(2, 1, &dto.CreateCommentRequest{Content: "bye"})
	require.NoError(t, err)
	require.NoError(t, likes.CreateForComment(3, info.ID))

	require.NoError(t, svc.Delete(2, info.ID))

	count, _ := likes.CountByComment(info.ID)
	assert.Equal(t, int64(0), count)
}
