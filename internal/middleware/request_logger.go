package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const CtxLoggerKey = "logger" // *zap.Logger

// 1リクエスト1行のアクセスログ。handlerからもLoggerFromで使える
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			c.Set(CtxLoggerKey, log)

			err := next(c)
			if err != nil {
				//echo.HTTPErrorなどをここでレスポンスにする
				c.Error(err)
			}

			req := c.Request()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", c.Path()),
				zap.String("uri", req.RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			}
			if userID, ok := c.Get(CtxUserIDKey).(int64); ok {
				fields = append(fields, zap.Int64("user_id", userID))
			}

			if c.Response().Status >= 500 {
				log.Error("request", fields...)
			} else {
				log.Info("request", fields...)
			}
			return nil
		}
	}
}

// RequestLoggerが無いときはNop
func LoggerFrom(c echo.Context) *zap.Logger {
	if log, ok := c.Get(CtxLoggerKey).(*zap.Logger); ok && log != nil {
		return log
	}
	return zap.NewNop()
}
