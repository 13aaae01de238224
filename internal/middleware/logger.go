package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorLogger logs errors attached with c.Error and any 5xx response.
func ErrorLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if len(c.Errors) == 0 && c.Writer.Status() < http.StatusInternalServerError {
			return
		}

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("client_ip", c.ClientIP()),
			zap.Int64("user_id", c.GetInt64(CtxUserID)),
			zap.String("role", c.GetString(CtxRole)),
			zap.String("request_id", c.GetString(CtxRequestID)),
			zap.Duration("latency", time.Since(start)),
		}

		if len(c.Errors) == 0 {
			log.Error("request_error", fields...)
			return
		}
		for _, err := range c.Errors {
			log.Error("request_error", append(fields, zap.Error(err.Err))...)
		}
	}
}
