package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ZapLogger logs each request once it completes. API paths log at info
// (warn for 5xx), everything else at debug.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start).String(),
			"clientIP", c.ClientIP(),
		}
		if v, ok := c.Get(CtxUserID); ok {
			if id, ok := v.(uuid.UUID); ok {
				fields = append(fields, "user_id", id.String())
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case !strings.HasPrefix(path, "/api/"):
			sugar.Debugw("HTTP", fields...)
		case status >= 500:
			sugar.Warnw("HTTP", fields...)
		default:
			sugar.Infow("HTTP", fields...)
		}
	}
}
