package kafka

import (
	"context"
	"encoding/json"
	"time"

	"clipstream/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EngagementHandler 处理互动事件的回调函数
type EngagementHandler func(ev *EngagementEvent) error

// StartEngagementConsumer 启动互动事件消费者（阻塞，通常在 goroutine 中运行）
// ctx 取消后自动停止
func StartEngagementConsumer(ctx context.Context, brokers []string, topic, groupID string, handler EngagementHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka engagement consumer stopped")
	}()

	logger.Info("Kafka engagement consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			continue
		}

		var ev EngagementEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			logger.Error("Failed to unmarshal engagement event",
				zap.ByteString("value", msg.Value), zap.Error(err))
			continue
		}

		if err := handler(&ev); err != nil {
			logger.Error("Failed to handle engagement event",
				zap.String("kind", ev.Kind),
				zap.Int64("channel_id", ev.ChannelID),
				zap.Error(err))
		}
	}
}
