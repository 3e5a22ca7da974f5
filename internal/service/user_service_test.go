package service

import (
	"context"
	"testing"

	"clipstream/internal/api/dto"
	"clipstream/internal/apperror"
	"clipstream/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (*UserService, *fakeUserStore, *fakeSubscriptionStore, *fakeRelay) {
	t.Helper()
	users := newFakeUserStore()
	subs := newFakeSubscriptionStore()
	relay := &fakeRelay{}

	require.NoError(t, users.Create(&model.User{
		Username: "alice", Email: "alice@example.com", FullName: "Alice",
		AvatarObject: "old-avatar",
	}))
	require.NoError(t, users.Create(&model.User{
		Username: "bob", Email: "bob@example.com", FullName: "Bob",
	}))

	return NewUserService(users, subs, newFakeHistoryStore(), relay), users, subs, relay
}

func TestUpdateAccount_EmailConflict(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	email := "bob@example.com"
	_, err := svc.UpdateAccount(1, &dto.UpdateAccountRequest{Email: &email})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestUpdateAccount_OwnEmailAllowed(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	// 自己的邮箱不算冲突
	email := "alice@example.com"
	name := "Alice L."
	info, err := svc.UpdateAccount(1, &dto.UpdateAccountRequest{Email: &email, FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", info.FullName)
}

func TestUpdateAccount_NothingToUpdate(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	_, err := svc.UpdateAccount(1, &dto.UpdateAccountRequest{})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestUpdateAvatar_DeletesOldObject(t *testing.T) {
	svc, _, _, relay := newTestUserService(t)

	info, err := svc.UpdateAvatar(context.Background(), 1, "/tmp/new-avatar.png")
	require.NoError(t, err)
	assert.NotEmpty(t, info.AvatarURL)
	assert.Contains(t, relay.deleted, "old-avatar")
}

func TestGetChannelProfile_Counts(t *testing.T) {
	svc, _, subs, _ := newTestUserService(t)

	require.NoError(t, subs.Create(2, 1)) // bob 订阅 alice
	require.NoError(t, subs.Create(1, 2)) // alice 订阅 bob

	profile, err := svc.GetChannelProfile("alice", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.SubscribersCount)
	assert.Equal(t, int64(1), profile.ChannelsSubscribedToCount)
	assert.True(t, profile.IsSubscribed)

	// 匿名访问 is_subscribed 恒为 false
	profile, err = svc.GetChannelProfile("alice", 0)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)
}

func TestGetChannelProfile_CaseInsensitiveUsername(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	profile, err := svc.GetChannelProfile("Alice", 0)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
}

func TestGetChannelProfile_Unknown(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	_, err := svc.GetChannelProfile("ghost", 0)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
