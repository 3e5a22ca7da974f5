package service

import (
	"context"
	"errors"
	"time"

	"clipstream/internal/api/dto"
	"clipstream/internal/apperror"
	infraKafka "clipstream/internal/infra/kafka"
	"clipstream/internal/model"
	"clipstream/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubscriptionService struct {
	subs   SubscriptionStore
	users  UserStore
	events EventPublisher
}

func NewSubscriptionService(subs SubscriptionStore, users UserStore, events EventPublisher) *SubscriptionService {
	return &SubscriptionService{subs: subs, users: users, events: events}
}

// Toggle 订阅开关：已订阅则退订，未订阅则订阅。不允许订阅自己。
func (s *SubscriptionService) Toggle(subscriberID, channelID int64) (*dto.SubscribeStatus, error) {
	if subscriberID == channelID {
		return nil, apperror.InvalidArgument("不能订阅自己的频道")
	}

	if _, err := s.users.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("频道不存在")
		}
		return nil, apperror.Internal("订阅操作失败", err)
	}

	deleted, err := s.subs.Delete(subscriberID, channelID)
	if err != nil {
		return nil, apperror.Internal("订阅操作失败", err)
	}

	subscribed := false
	if !deleted {
		if err := s.subs.Create(subscriberID, channelID); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperror.Internal("订阅操作失败", err)
			}
		}
		subscribed = true
	}

	kind := infraKafka.EngagementUnsubscribe
	if subscribed {
		kind = infraKafka.EngagementSubscribe
	}
	s.publishEngagement(kind, channelID, subscriberID)

	return &dto.SubscribeStatus{IsSubscribed: subscribed}, nil
}

// GetSubscribers 频道的订阅者列表，按订阅时间倒序
func (s *SubscriptionService) GetSubscribers(channelID int64, page, limit int) (*dto.SubscriptionListData, error) {
	if _, err := s.users.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("频道不存在")
		}
		return nil, apperror.Internal("获取订阅者列表失败", err)
	}

	skip := (page - 1) * limit
	users, total, err := s.subs.ListSubscribers(channelID, skip, limit)
	if err != nil {
		return nil, apperror.Internal("获取订阅者列表失败", err)
	}
	return buildSubscriptionList(users, total, page, limit), nil
}

// GetSubscribedChannels 用户订阅的频道列表，按订阅时间倒序
func (s *SubscriptionService) GetSubscribedChannels(subscriberID int64, page, limit int) (*dto.SubscriptionListData, error) {
	skip := (page - 1) * limit
	users, total, err := s.subs.ListSubscribedChannels(subscriberID, skip, limit)
	if err != nil {
		return nil, apperror.Internal("获取订阅频道列表失败", err)
	}
	return buildSubscriptionList(users, total, page, limit), nil
}

func buildSubscriptionList(users []model.User, total int64, page, limit int) *dto.SubscriptionListData {
	data := &dto.SubscriptionListData{
		Users:      make([]dto.ChannelUserInfo, 0, len(users)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}
	for i := range users {
		data.Users = append(data.Users, dto.ChannelUserInfo{
			ID:        users[i].ID,
			Username:  users[i].Username,
			FullName:  users[i].FullName,
			AvatarURL: users[i].AvatarURL,
		})
	}
	return data
}

func (s *SubscriptionService) publishEngagement(kind string, channelID, actorID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), eventPublishTimeout)
	defer cancel()
	ev := &infraKafka.EngagementEvent{
		Kind:      kind,
		ChannelID: channelID,
		ActorID:   actorID,
		At:        time.Now(),
	}
	if err := s.events.PublishEngagement(ctx, ev); err != nil {
		logger.Warn("Publish engagement event failed", zap.String("kind", kind), zap.Error(err))
	}
}
