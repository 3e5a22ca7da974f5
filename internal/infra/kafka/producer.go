package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clipstream/internal/config"
	"clipstream/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// 互动事件类型
const (
	EngagementView        = "view"
	EngagementLike        = "like"
	EngagementUnlike      = "unlike"
	EngagementSubscribe   = "subscribe"
	EngagementUnsubscribe = "unsubscribe"
)

// EngagementEvent 互动事件消息体，worker 消费后汇总到 channel_stats
type EngagementEvent struct {
	Kind      string    `json:"kind"`
	ChannelID int64     `json:"channel_id"`
	VideoID   int64     `json:"video_id,omitempty"`
	ActorID   int64     `json:"actor_id"`
	At        time.Time `json:"at"`
}

// Producer 互动事件生产者
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer 初始化 Kafka 生产者
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.EngagementTopic),
	)

	return &Producer{writer: writer, topic: cfg.EngagementTopic}
}

// PublishEngagement 发送互动事件，按频道分区保证单频道内有序
func (p *Producer) PublishEngagement(ctx context.Context, ev *EngagementEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal engagement event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(fmt.Sprintf("channel-%d", ev.ChannelID)),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send engagement event: %w", err)
	}
	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
