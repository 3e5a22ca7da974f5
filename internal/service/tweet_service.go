package service

import (
	"errors"

	"clipstream/internal/api/dto"
	"clipstream/internal/apperror"
	"clipstream/internal/model"

	"gorm.io/gorm"
)

type TweetService struct {
	tweets TweetStore
	users  UserStore
}

func NewTweetService(tweets TweetStore, users UserStore) *TweetService {
	return &TweetService{tweets: tweets, users: users}
}

// Create 发布动态
func (s *TweetService) Create(userID int64, req *dto.TweetRequest) (*dto.TweetInfo, error) {
	tweet := &model.Tweet{OwnerID: userID, Content: req.Content}
	if err := s.tweets.Create(tweet); err != nil {
		return nil, apperror.Internal("动态发布失败", err)
	}
	info := toTweetInfo(tweet)
	return &info, nil
}

// Update 修改动态内容，仅作者可操作
func (s *TweetService) Update(userID, tweetID int64, req *dto.TweetRequest) (*dto.TweetInfo, error) {
	if _, err := s.ownedTweet(tweetID, userID); err != nil {
		return nil, err
	}

	updated, err := s.tweets.UpdateContent(tweetID, req.Content)
	if err != nil {
		return nil, apperror.Internal("动态更新失败", err)
	}
	info := toTweetInfo(updated)
	return &info, nil
}

// Delete 删除动态，仅作者可操作
func (s *TweetService) Delete(userID, tweetID int64) error {
	if _, err := s.ownedTweet(tweetID, userID); err != nil {
		return err
	}
	if err := s.tweets.Delete(tweetID); err != nil {
		return apperror.Internal("动态删除失败", err)
	}
	return nil
}

// ListByUser 某用户的动态列表，按发布时间倒序
func (s *TweetService) ListByUser(ownerID int64, page, limit int) (*dto.TweetListData, error) {
	if _, err := s.users.GetByID(ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("用户不存在")
		}
		return nil, apperror.Internal("获取动态列表失败", err)
	}

	skip := (page - 1) * limit
	tweets, total, err := s.tweets.ListByOwner(ownerID, skip, limit)
	if err != nil {
		return nil, apperror.Internal("获取动态列表失败", err)
	}

	data := &dto.TweetListData{
		Tweets:     make([]dto.TweetInfo, 0, len(tweets)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}
	for i := range tweets {
		data.Tweets = append(data.Tweets, toTweetInfo(&tweets[i]))
	}
	return data, nil
}

func (s *TweetService) ownedTweet(tweetID, userID int64) (*model.Tweet, error) {
	tweet, err := s.tweets.GetByID(tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("动态不存在")
		}
		return nil, apperror.Internal("获取动态失败", err)
	}
	if tweet.OwnerID != userID {
		return nil, apperror.Forbidden("无权操作他人的动态")
	}
	return tweet, nil
}

func toTweetInfo(tweet *model.Tweet) dto.TweetInfo {
	return dto.TweetInfo{
		ID:        tweet.ID,
		OwnerID:   tweet.OwnerID,
		Content:   tweet.Content,
		CreatedAt: tweet.CreatedAt,
	}
}
