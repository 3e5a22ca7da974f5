package repository

import (
	"clipstream/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Exists 查询订阅关系是否存在
func (r *SubscriptionRepository) Exists(subscriberID, channelID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

// Create 创建订阅关系
func (r *SubscriptionRepository) Create(subscriberID, channelID int64) error {
	return r.db.Create(&model.Subscription{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}).Error
}

// Delete 删除订阅关系，返回是否删到了行
func (r *SubscriptionRepository) Delete(subscriberID, channelID int64) (bool, error) {
	result := r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountSubscribers 频道的订阅者数量
func (r *SubscriptionRepository) CountSubscribers(channelID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

// CountSubscriptions 用户订阅的频道数量
func (r *SubscriptionRepository) CountSubscriptions(subscriberID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

// ListSubscribers 频道的订阅者用户列表（按订阅时间倒序）
func (r *SubscriptionRepository) ListSubscribers(channelID int64, skip, limit int) ([]model.User, int64, error) {
	query := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := r.db.Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscriber_id = users.id").
		Where("subscriptions.channel_id = ?", channelID).
		Order("subscriptions.created_at DESC").
		Offset(skip).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ListSubscribedChannels 用户订阅的频道用户列表（按订阅时间倒序）
func (r *SubscriptionRepository) ListSubscribedChannels(subscriberID int64, skip, limit int) ([]model.User, int64, error) {
	query := r.db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := r.db.Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.channel_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.created_at DESC").
		Offset(skip).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
