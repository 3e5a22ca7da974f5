package middleware

import (
	"fmt"
	"net/http"

	"clipstream/internal/api/response"
	"clipstream/internal/config"
	"clipstream/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit 基于 Redis 的固定窗口限流，按客户端 IP 计数。
// Redis 不可用时放行请求，限流只做保护不做强一致。
func RateLimit(rdb *redis.Client, cfg *config.RateLimitConfig) gin.HandlerFunc {
	window := cfg.Window()

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		ctx := c.Request.Context()

		// INCR 与 EXPIRE 放在同一个 pipeline 里，计数键不会留下没有 TTL 的残骸；
		// ExpireNX 只在键还没有 TTL 时生效，顺带修复历史遗留的无 TTL 键
		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Warn("Rate limit counter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if incr.Val() > int64(cfg.Requests) {
			response.Fail(c, http.StatusTooManyRequests, "请求过于频繁，请稍后重试")
			c.Abort()
			return
		}

		c.Next()
	}
}
