package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 回数を数えるストア（infra/ratelimit.RedisStore）
type RateLimitStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// ip+method+routeごとの固定ウィンドウ。ストアが落ちていたら通す
func RateLimit(store RateLimitStore, max int64, window time.Duration, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "rl:" + c.RealIP() + ":" + c.Request().Method + ":" + c.Path()

			count, remaining, err := store.Hit(c.Request().Context(), key, window)
			if err != nil {
				log.Warn("rate limit store unavailable", zap.String("key", key), zap.Error(err))
				return next(c)
			}

			if count > max {
				secs := int(remaining / time.Second)
				if remaining%time.Second != 0 {
					secs++
				}
				if secs < 1 {
					secs = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return deny(c, http.StatusTooManyRequests, "too many requests")
			}

			return next(c)
		}
	}
}
