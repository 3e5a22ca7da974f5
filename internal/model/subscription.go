package model

import "time"

// Subscription 订阅关系模型：行的存在即订阅状态
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:订阅关系ID" json:"id"`
	SubscriberID int64     `gorm:"not null;uniqueIndex:uq_subscriber_channel;index:idx_subscriptions_subscriber;comment:订阅者用户ID" json:"subscriber_id"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:uq_subscriber_channel;index:idx_subscriptions_channel;comment:被订阅频道用户ID" json:"channel_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index:idx_subscriptions_created_at;comment:订阅时间" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
