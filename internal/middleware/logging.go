package middleware

import (
    "time"

    "github.com/gin-gonic/gin"
    "go.uber.org/zap"

    "github.com/shanikumar001/project-gallery-backend/pkg/logger"
)

// RequestLog 结构化访问日志
func RequestLog() gin.HandlerFunc {
    return func(c *gin.Context) {
        start := time.Now()
        c.Next()
        logger.Info("http request",
            zap.String("method", c.Request.Method),
            zap.String("path", c.Request.URL.Path),
            zap.Int("status", c.Writer.Status()),
            zap.Duration("latency", time.Since(start)),
            zap.String("ip", c.ClientIP()),
        )
    }
}
