package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	infraKafka "clipstream/internal/infra/kafka"
	infraMinio "clipstream/internal/infra/minio"
	"clipstream/internal/model"

	"gorm.io/gorm"
)

// 手写内存版 store，不引入 mock 框架，行为一目了然。
// 缺记录时返回 gorm.ErrRecordNotFound，与 repository 层保持一致。

type fakeUserStore struct {
	users     map[int64]*model.User
	nextID    int64
	createErr error // 设置后 Create 直接返回该错误，模拟唯一索引冲突
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User), nextID: 1}
}

func (f *fakeUserStore) GetByID(id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	username = strings.ToLower(username)
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetByUsernameOrEmail(identifier string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == strings.ToLower(identifier) || u.Email == identifier {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	for _, u := range f.users {
		if u.Username == strings.ToLower(username) || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) ExistsByEmail(email string, excludeID int64) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Create(user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) Update(id int64, updates map[string]interface{}) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for key, val := range updates {
		switch key {
		case "full_name":
			u.FullName = val.(string)
		case "email":
			u.Email = val.(string)
		case "password":
			u.Password = val.(string)
		case "avatar_url":
			u.AvatarURL = val.(string)
		case "avatar_object":
			u.AvatarObject = val.(string)
		case "cover_url":
			u.CoverURL = val.(string)
		case "cover_object":
			u.CoverObject = val.(string)
		}
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) UpdateRefreshToken(id int64, refreshToken *string) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.RefreshToken = refreshToken
	return nil
}

type fakeVideoStore struct {
	videos map[int64]*model.Video
	nextID int64
	owners map[int64]*model.User // OwnerID -> owner，GetByIDWithOwner 用
}

func newFakeVideoStore() *fakeVideoStore {
	return &fakeVideoStore{videos: make(map[int64]*model.Video), nextID: 1, owners: make(map[int64]*model.User)}
}

func (f *fakeVideoStore) GetByID(id int64) (*model.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVideoStore) GetByIDWithOwner(id int64) (*model.Video, error) {
	v, err := f.GetByID(id)
	if err != nil {
		return nil, err
	}
	if owner, ok := f.owners[v.OwnerID]; ok {
		v.Owner = *owner
	}
	return v, nil
}

func (f *fakeVideoStore) GetByIDs(ids []int64) ([]model.Video, error) {
	out := make([]model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := f.videos[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVideoStore) Create(video *model.Video) error {
	video.ID = f.nextID
	f.nextID++
	video.CreatedAt = time.Now()
	copied := *video
	f.videos[video.ID] = &copied
	return nil
}

func (f *fakeVideoStore) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for key, val := range updates {
		switch key {
		case "title":
			v.Title = val.(string)
		case "description":
			v.Description = val.(string)
		case "thumbnail_url":
			v.ThumbnailURL = val.(string)
		case "thumbnail_object":
			v.ThumbnailObject = val.(string)
		}
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVideoStore) Delete(id int64) error {
	delete(f.videos, id)
	return nil
}

func (f *fakeVideoStore) TogglePublish(id int64) (bool, error) {
	v, ok := f.videos[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	v.IsPublished = !v.IsPublished
	return v.IsPublished, nil
}

func (f *fakeVideoStore) IncrementViews(id int64) error {
	v, ok := f.videos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Views++
	return nil
}

func (f *fakeVideoStore) List(skip, limit int, ownerID *int64, publishedOnly bool, search *string, sortBy, sortType string) ([]model.Video, int64, error) {
	matched := make([]model.Video, 0)
	for _, v := range f.videos {
		if publishedOnly && !v.IsPublished {
			continue
		}
		if ownerID != nil && v.OwnerID != *ownerID {
			continue
		}
		if search != nil && !strings.Contains(strings.ToLower(v.Title), strings.ToLower(*search)) {
			continue
		}
		matched = append(matched, *v)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if skip >= len(matched) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (f *fakeVideoStore) CountByOwner(ownerID int64) (int64, error) {
	var n int64
	for _, v := range f.videos {
		if v.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeVideoStore) SumViewsByOwner(ownerID int64) (int64, error) {
	var n int64
	for _, v := range f.videos {
		if v.OwnerID == ownerID {
			n += v.Views
		}
	}
	return n, nil
}

type likeKey struct {
	userID int64
	kind   string
	target int64
}

type fakeLikeStore struct {
	likes     map[likeKey]time.Time
	createErr error // 设置后 create 直接返回该错误，模拟并发冲突
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{likes: make(map[likeKey]time.Time)}
}

func (f *fakeLikeStore) exists(userID int64, kind string, target int64) (bool, error) {
	_, ok := f.likes[likeKey{userID, kind, target}]
	return ok, nil
}

func (f *fakeLikeStore) create(userID int64, kind string, target int64) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := likeKey{userID, kind, target}
	if _, ok := f.likes[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.likes[key] = time.Now()
	return nil
}

func (f *fakeLikeStore) remove(userID int64, kind string, target int64) (bool, error) {
	key := likeKey{userID, kind, target}
	if _, ok := f.likes[key]; !ok {
		return false, nil
	}
	delete(f.likes, key)
	return true, nil
}

func (f *fakeLikeStore) ExistsForVideo(userID, videoID int64) (bool, error) {
	return f.exists(userID, "video", videoID)
}
func (f *fakeLikeStore) ExistsForComment(userID, commentID int64) (bool, error) {
	return f.exists(userID, "comment", commentID)
}
func (f *fakeLikeStore) ExistsForTweet(userID, tweetID int64) (bool, error) {
	return f.exists(userID, "tweet", tweetID)
}
func (f *fakeLikeStore) CreateForVideo(userID, videoID int64) error {
	return f.create(userID, "video", videoID)
}
func (f *fakeLikeStore) CreateForComment(userID, commentID int64) error {
	return f.create(userID, "comment", commentID)
}
func (f *fakeLikeStore) CreateForTweet(userID, tweetID int64) error {
	return f.create(userID, "tweet", tweetID)
}
func (f *fakeLikeStore) DeleteForVideo(userID, videoID int64) (bool, error) {
	return f.remove(userID, "video", videoID)
}
func (f *fakeLikeStore) DeleteForComment(userID, commentID int64) (bool, error) {
	return f.remove(userID, "comment", commentID)
}
func (f *fakeLikeStore) DeleteForTweet(userID, tweetID int64) (bool, error) {
	return f.remove(userID, "tweet", tweetID)
}

func (f *fakeLikeStore) CountByVideo(videoID int64) (int64, error) {
	var n int64
	for key := range f.likes {
		if key.kind == "video" && key.target == videoID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLikeStore) CountByComment(commentID int64) (int64, error) {
	var n int64
	for key := range f.likes {
		if key.kind == "comment" && key.target == commentID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLikeStore) ListLikedVideos(userID int64, skip, limit int) ([]model.Like, int64, error) {
	return nil, 0, nil
}

func (f *fakeLikeStore) DeleteByVideo(videoID int64) error {
	for key := range f.likes {
		if key.kind == "video" && key.target == videoID {
			delete(f.likes, key)
		}
	}
	return nil
}

func (f *fakeLikeStore) DeleteByComment(commentID int64) error {
	for key := range f.likes {
		if key.kind == "comment" && key.target == commentID {
			delete(f.likes, key)
		}
	}
	return nil
}

func (f *fakeLikeStore) CountOnVideosOfOwner(ownerID int64) (int64, error) {
	return int64(len(f.likes)), nil
}

type subKey struct {
	subscriber int64
	channel    int64
}

type fakeSubscriptionStore struct {
	subs      map[subKey]struct{}
	createErr error
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{subs: make(map[subKey]struct{})}
}

func (f *fakeSubscriptionStore) Exists(subscriberID, channelID int64) (bool, error) {
	_, ok := f.subs[subKey{subscriberID, channelID}]
	return ok, nil
}

func (f *fakeSubscriptionStore) Create(subscriberID, channelID int64) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := subKey{subscriberID, channelID}
	if _, ok := f.subs[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.subs[key] = struct{}{}
	return nil
}

func (f *fakeSubscriptionStore) Delete(subscriberID, channelID int64) (bool, error) {
	key := subKey{subscriberID, channelID}
	if _, ok := f.subs[key]; !ok {
		return false, nil
	}
	delete(f.subs, key)
	return true, nil
}

func (f *fakeSubscriptionStore) CountSubscribers(channelID int64) (int64, error) {
	var n int64
	for key := range f.subs {
		if key.channel == channelID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSubscriptionStore) CountSubscriptions(subscriberID int64) (int64, error) {
	var n int64
	for key := range f.subs {
		if key.subscriber == subscriberID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSubscriptionStore) ListSubscribers(channelID int64, skip, limit int) ([]model.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeSubscriptionStore) ListSubscribedChannels(subscriberID int64, skip, limit int) ([]model.User, int64, error) {
	return nil, 0, nil
}

type fakeCommentStore struct {
	comments map[int64]*model.Comment
	nextID   int64
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[int64]*model.Comment), nextID: 1}
}

func (f *fakeCommentStore) GetByID(id int64) (*model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCommentStore) Create(comment *model.Comment) error {
	comment.ID = f.nextID
	f.nextID++
	comment.CreatedAt = time.Now()
	copied := *comment
	f.comments[comment.ID] = &copied
	return nil
}

func (f *fakeCommentStore) UpdateContent(id int64, content string) (*model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c.Content = content
	copied := *c
	return &copied, nil
}

func (f *fakeCommentStore) Delete(id int64) error {
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentStore) DeleteByVideo(videoID int64) error {
	for id, c := range f.comments {
		if c.VideoID == videoID {
			delete(f.comments, id)
		}
	}
	return nil
}

func (f *fakeCommentStore) ListByVideo(videoID int64, skip, limit int) ([]model.Comment, int64, error) {
	matched := make([]model.Comment, 0)
	for _, c := range f.comments {
		if c.VideoID == videoID {
			matched = append(matched, *c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	if skip >= len(matched) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

type fakeTweetStore struct {
	tweets map[int64]*model.Tweet
	nextID int64
}

func newFakeTweetStore() *fakeTweetStore {
	return &fakeTweetStore{tweets: make(map[int64]*model.Tweet), nextID: 1}
}

func (f *fakeTweetStore) GetByID(id int64) (*model.Tweet, error) {
	t, ok := f.tweets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTweetStore) Create(tweet *model.Tweet) error {
	tweet.ID = f.nextID
	f.nextID++
	tweet.CreatedAt = time.Now()
	copied := *tweet
	f.tweets[tweet.ID] = &copied
	return nil
}

func (f *fakeTweetStore) UpdateContent(id int64, content string) (*model.Tweet, error) {
	t, ok := f.tweets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	t.Content = content
	copied := *t
	return &copied, nil
}

func (f *fakeTweetStore) Delete(id int64) error {
	delete(f.tweets, id)
	return nil
}

func (f *fakeTweetStore) ListByOwner(ownerID int64, skip, limit int) ([]model.Tweet, int64, error) {
	matched := make([]model.Tweet, 0)
	for _, t := range f.tweets {
		if t.OwnerID == ownerID {
			matched = append(matched, *t)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	if skip >= len(matched) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

type historyKey struct {
	userID  int64
	videoID int64
}

type fakeHistoryStore struct {
	entries map[historyKey]time.Time
}

func newFakeHistoryStore() *fakeHistoryStore {
	return &fakeHistoryStore{entries: make(map[historyKey]time.Time)}
}

func (f *fakeHistoryStore) Add(userID, videoID int64) error {
	key := historyKey{userID, videoID}
	// 唯一索引语义：重复观看不追加
	if _, ok := f.entries[key]; !ok {
		f.entries[key] = time.Now()
	}
	return nil
}

func (f *fakeHistoryStore) ListByUser(userID int64, skip, limit int) ([]model.WatchHistory, int64, error) {
	return nil, 0, nil
}

func (f *fakeHistoryStore) DeleteByVideo(videoID int64) error {
	for key := range f.entries {
		if key.videoID == videoID {
			delete(f.entries, key)
		}
	}
	return nil
}

type fakeStatsStore struct {
	deltas map[string]*model.ChannelStat // "channelID/day"
}

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{deltas: make(map[string]*model.ChannelStat)}
}

func (f *fakeStatsStore) AddDelta(channelID int64, day string, views, likes, subscriptions int64) error {
	key := fmt.Sprintf("%d/%s", channelID, day)
	row, ok := f.deltas[key]
	if !ok {
		row = &model.ChannelStat{ChannelID: channelID, Day: day}
		f.deltas[key] = row
	}
	row.Views += views
	row.Likes += likes
	row.Subscriptions += subscriptions
	return nil
}

func (f *fakeStatsStore) ListRecent(channelID int64, days int) ([]model.ChannelStat, error) {
	out := make([]model.ChannelStat, 0)
	for _, row := range f.deltas {
		if row.ChannelID == channelID {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

type fakeRelay struct {
	uploads  []string
	deleted  []string
	uploadN  int
	duration float64
}

func (f *fakeRelay) Upload(ctx context.Context, localPath string, kind infraMinio.Kind) (*infraMinio.UploadResult, error) {
	f.uploadN++
	f.uploads = append(f.uploads, localPath)
	object := fmt.Sprintf("object-%d", f.uploadN)
	result := &infraMinio.UploadResult{
		URL:        "http://media.local/" + object,
		ObjectName: object,
	}
	if kind == infraMinio.KindVideo {
		result.Duration = f.duration
	}
	return result, nil
}

func (f *fakeRelay) Delete(ctx context.Context, objectName string) error {
	f.deleted = append(f.deleted, objectName)
	return nil
}

type fakePublisher struct {
	events []*infraKafka.EngagementEvent
}

func (f *fakePublisher) PublishEngagement(ctx context.Context, ev *infraKafka.EngagementEvent) error {
	f.events = append(f.events, ev)
	return nil
}

type fakeSearchIndex struct {
	synced    map[int64]string
	removed   []int64
	searchErr error
	hits      []int64
	hitsTotal int64
}

func newFakeSearchIndex() *fakeSearchIndex {
	return &fakeSearchIndex{synced: make(map[int64]string)}
}

func (f *fakeSearchIndex) SyncVideo(ctx context.Context, video *model.Video, ownerName string) error {
	f.synced[video.ID] = video.Title
	return nil
}

func (f *fakeSearchIndex) RemoveVideo(ctx context.Context, videoID int64) error {
	f.removed = append(f.removed, videoID)
	delete(f.synced, videoID)
	return nil
}

func (f *fakeSearchIndex) Search(ctx context.Context, query string, skip, limit int) ([]int64, int64, error) {
	if f.searchErr != nil {
		return nil, 0, f.searchErr
	}
	return f.hits, f.hitsTotal, nil
}
