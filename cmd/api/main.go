package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"clipstream/internal/api/handler"
	"clipstream/internal/api/middleware"
	"clipstream/internal/api/router"
	"clipstream/internal/config"
	"clipstream/internal/infra/database"
	infraES "clipstream/internal/infra/elasticsearch"
	infraKafka "clipstream/internal/infra/kafka"
	infraMinio "clipstream/internal/infra/minio"
	infraRedis "clipstream/internal/infra/redis"
	"clipstream/internal/model"
	"clipstream/internal/repository"
	"clipstream/internal/service"
	"clipstream/pkg/logger"
	"clipstream/pkg/token"

	_ "clipstream/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Clipstream API
// @version 1.0
// @description 视频分享平台 API 服务

// @contact.name API Support
// @contact.email support@clipstream.dev

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close(db)

	// 自动迁移数据库表
	if err := database.AutoMigrate(db,
		&model.User{},
		&model.Video{},
		&model.Like{},
		&model.Subscription{},
		&model.Comment{},
		&model.Tweet{},
		&model.WatchHistory{},
		&model.ChannelStat{},
	); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化Redis
	rdb, err := infraRedis.Init(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer rdb.Close()

	// 初始化MinIO媒体中转
	relay, err := infraMinio.NewRelay(&cfg.MinIO)
	if err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	// 初始化Kafka互动事件生产者
	producer := infraKafka.NewProducer(&cfg.Kafka)
	defer producer.Close()

	// 初始化 Elasticsearch（失败则搜索降级到数据库模糊匹配）
	searchIndex, err := infraES.NewVideoIndex(&cfg.Elasticsearch)
	if err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
		searchIndex = nil
	} else {
		ensureCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := searchIndex.EnsureIndex(ensureCtx); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
		cancel()
	}

	// JWT 令牌管理器
	tokens := token.NewManager(cfg.App.Name, &cfg.JWT)

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(rdb, &cfg.RateLimit))

	// 初始化依赖（Repository -> Service -> Handler）
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	var search service.SearchIndex = searchIndex
	if searchIndex == nil {
		search = noopSearchIndex{}
	}

	authService := service.NewAuthService(userRepo, tokens, relay)
	userService := service.NewUserService(userRepo, subscriptionRepo, historyRepo, relay)
	videoService := service.NewVideoService(videoRepo, likeRepo, subscriptionRepo, commentRepo, historyRepo, relay, producer, search)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo, producer)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo, producer)
	commentService := service.NewCommentService(commentRepo, videoRepo, likeRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo)
	statsService := service.NewStatsService(statsRepo, videoRepo, likeRepo, subscriptionRepo)

	authHandler := handler.NewAuthHandler(authService, tokens)
	userHandler := handler.NewUserHandler(userService)
	videoHandler := handler.NewVideoHandler(videoService)
	likeHandler := handler.NewLikeHandler(likeService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	commentHandler := handler.NewCommentHandler(commentService)
	tweetHandler := handler.NewTweetHandler(tweetService)
	dashboardHandler := handler.NewDashboardHandler(statsService)

	// 基础路由
	r.GET("/healthz", healthCheckHandler)

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 业务路由
	router.Setup(r, tokens, userRepo,
		authHandler, userHandler, videoHandler, likeHandler,
		subscriptionHandler, commentHandler, tweetHandler, dashboardHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)

	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// noopSearchIndex Elasticsearch 不可用时的空实现，列表查询直接走数据库
type noopSearchIndex struct{}

func (noopSearchIndex) SyncVideo(ctx context.Context, video *model.Video, ownerName string) error {
	return nil
}

func (noopSearchIndex) RemoveVideo(ctx context.Context, videoID int64) error {
	return nil
}

func (noopSearchIndex) Search(ctx context.Context, query string, skip, limit int) ([]int64, int64, error) {
	return nil, 0, fmt.Errorf("search index unavailable")
}
