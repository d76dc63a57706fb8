package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/jaylee-dev/blog_comment_server/internal/pkg/apperr"
	"github.com/jaylee-dev/blog_comment_server/internal/pkg/response"
)

// RateLimit 基于 Redis 的固定窗口限流，按客户端 IP 计数
// Redis 不可用时放行，限流只是防护手段不能阻断正常写入
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rl:%s:%s", c.FullPath(), c.ClientIP())

		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			response.Error(c, &apperr.Error{
				Status:  http.StatusTooManyRequests,
				Code:    "RATE_LIMITED",
				Message: "操作过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
