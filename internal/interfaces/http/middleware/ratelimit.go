package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hookgenie-api/internal/interfaces/http/dto"
	"hookgenie-api/pkg/errors"
	"hookgenie-api/pkg/logger"
	"hookgenie-api/pkg/metrics"
)

// RateLimitRemainingHeader 当前窗口剩余请求数
const RateLimitRemainingHeader = "X-RateLimit-Remaining"

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
}

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Remaining(ctx context.Context, key string, limit int, window time.Duration) (int, error)
}

// KeyFunc 由会话与路由生成限流 key
type KeyFunc func(sessionID, endpoint string) string

// RateLimit 按会话、按路由的滑动窗口限流
func RateLimit(cfg RateLimitConfig, limiter RateLimiter, keyFn KeyFunc) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil || keyFn == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}

	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		key := keyFn(SessionID(c), endpoint)
		ctx := c.Request.Context()

		allowed, err := limiter.Allow(ctx, key, cfg.RequestsPerMinute, time.Minute)
		if err != nil {
			// 限流器故障时放行
			logger.Warn(ctx, "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}

		if !allowed {
			metrics.RateLimitRejected.WithLabelValues(endpoint).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Code:    http.StatusTooManyRequests,
				Message: "rate limit exceeded",
				Error:   &dto.ErrorDetail{ErrorCode: string(errors.CodeTooManyRequests)},
				TraceID: c.GetString("trace_id"),
			})
			return
		}

		if remaining, err := limiter.Remaining(ctx, key, cfg.RequestsPerMinute, time.Minute); err == nil {
			c.Header(RateLimitRemainingHeader, strconv.Itoa(remaining))
		}

		c.Next()
	}
}
