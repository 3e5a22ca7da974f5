package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"clipstream/internal/config"
	"clipstream/internal/infra/database"
	infraKafka "clipstream/internal/infra/kafka"
	"clipstream/internal/model"
	"clipstream/internal/repository"
	"clipstream/internal/service"
	"clipstream/pkg/logger"

	"go.uber.org/zap"
)

// 互动汇总 worker：消费互动事件流，按频道、按日累计到 channel_stats 表。
// 取消点赞/退订会记为负值，日内净值可能为负。
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	db, err := database.Init(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db, &model.ChannelStat{}); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	statsRepo := repository.NewStatsRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	statsService := service.NewStatsService(statsRepo, videoRepo, likeRepo, subscriptionRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	groupID := "clipstream-engagement-worker"
	logger.Info("Engagement worker started",
		zap.String("topic", cfg.Kafka.EngagementTopic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	infraKafka.StartEngagementConsumer(ctx, cfg.Kafka.Brokers, cfg.Kafka.EngagementTopic, groupID,
		func(ev *infraKafka.EngagementEvent) error {
			return statsService.ApplyEngagement(ev)
		},
	)

	logger.Info("Engagement worker stopped")
}
