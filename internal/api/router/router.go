package router

import (
	"clipstream/internal/api/handler"
	"clipstream/internal/api/middleware"
	"clipstream/pkg/token"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	tokens *token.Manager,
	users middleware.UserLoader,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	videoHandler *handler.VideoHandler,
	likeHandler *handler.LikeHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	commentHandler *handler.CommentHandler,
	tweetHandler *handler.TweetHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	v1 := r.Group("/api/v1")

	authRequired := middleware.AuthRequired(tokens, users)
	authOptional := middleware.AuthOptional(tokens, users)

	// --- 用户与认证模块 ---
	userRoutes := v1.Group("/users")
	{
		userRoutes.POST("/register", authHandler.Register)
		userRoutes.POST("/login", authHandler.Login)
		userRoutes.POST("/refresh-token", authHandler.Refresh)

		usersAuth := userRoutes.Group("", authRequired)
		{
			usersAuth.POST("/logout", authHandler.Logout)
			usersAuth.POST("/change-password", authHandler.ChangePassword)
			usersAuth.GET("/current", userHandler.GetCurrent)
			usersAuth.PATCH("/update-account", userHandler.UpdateAccount)
			usersAuth.PATCH("/avatar", userHandler.UpdateAvatar)
			usersAuth.PATCH("/cover", userHandler.UpdateCover)
			usersAuth.GET("/history", userHandler.GetWatchHistory)
		}

		// 频道主页可匿名访问，is_subscribed 相对登录者计算
		userRoutes.GET("/channel/:username", authOptional, userHandler.GetChannelProfile)
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 列表与详情可匿名访问；详情的播放量与观看历史只对登录用户生效
		videos.GET("", authOptional, videoHandler.List)
		videos.GET("/:id", authOptional, videoHandler.GetDetail)

		videosAuth := videos.Group("", authRequired)
		{
			videosAuth.POST("", videoHandler.Publish)
			videosAuth.PATCH("/:id", videoHandler.Update)
			videosAuth.DELETE("/:id", videoHandler.Delete)
			videosAuth.PATCH("/:id/toggle-publish", videoHandler.TogglePublish)
		}
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes", authRequired)
	{
		likes.POST("/toggle/video/:id", likeHandler.ToggleVideoLike)
		likes.POST("/toggle/comment/:id", likeHandler.ToggleCommentLike)
		likes.POST("/toggle/tweet/:id", likeHandler.ToggleTweetLike)
		likes.GET("/videos", likeHandler.GetLikedVideos)
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions", authRequired)
	{
		subscriptions.POST("/toggle/:id", subscriptionHandler.Toggle)
		subscriptions.GET("/:id/subscribers", subscriptionHandler.GetSubscribers)
		subscriptions.GET("/channels", subscriptionHandler.GetSubscribedChannels)
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.GET("/video/:id", authOptional, commentHandler.ListByVideo)

		commentsAuth := comments.Group("", authRequired)
		{
			commentsAuth.POST("/video/:id", commentHandler.Create)
			commentsAuth.PATCH("/:id", commentHandler.Update)
			commentsAuth.DELETE("/:id", commentHandler.Delete)
		}
	}

	// --- 动态模块 ---
	tweets := v1.Group("/tweets")
	{
		tweets.GET("/user/:id", tweetHandler.ListByUser)

		tweetsAuth := tweets.Group("", authRequired)
		{
			tweetsAuth.POST("", tweetHandler.Create)
			tweetsAuth.PATCH("/:id", tweetHandler.Update)
			tweetsAuth.DELETE("/:id", tweetHandler.Delete)
		}
	}

	// --- 仪表盘模块 ---
	dashboard := v1.Group("/dashboard", authRequired)
	{
		dashboard.GET("/stats", dashboardHandler.GetChannelStats)
	}
}
