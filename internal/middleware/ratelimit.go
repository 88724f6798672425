package middleware

import (
    "net/http"
    "sync"

    "github.com/gin-gonic/gin"
    "golang.org/x/time/rate"

    "github.com/shanikumar001/project-gallery-backend/pkg/response"
)

// RateLimit 按客户端 IP 限流；limiter 懒创建，常驻内存
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
    var (
        mu       sync.Mutex
        limiters = make(map[string]*rate.Limiter)
    )
    get := func(key string) *rate.Limiter {
        mu.Lock()
        defer mu.Unlock()
        l, ok := limiters[key]
        if !ok {
            l = rate.NewLimiter(rps, burst)
            limiters[key] = l
        }
        return l
    }
    return func(c *gin.Context) {
        if !get(c.ClientIP()).Allow() {
            c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Response{
                Code:    http.StatusTooManyRequests,
                Message: "too many requests",
            })
            return
        }
        c.Next()
    }
}
