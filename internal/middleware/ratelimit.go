package middleware

import (
	"time"

	"robodesk/pkg/response"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"
)

// RateLimit 每个IP一个令牌桶，perMinute 为每分钟补充的令牌数
func RateLimit(perMinute, burst int) gin.HandlerFunc {
	limiters, _ := lru.New(4096)
	every := rate.Every(time.Minute / time.Duration(perMinute))
	return func(c *gin.Context) {
		key := c.ClientIP()
		var limiter *rate.Limiter
		if v, ok := limiters.Get(key); ok {
			limiter = v.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(every, burst)
			// 并发时可能创建两个，以先放入的为准
			if existed, _ := limiters.ContainsOrAdd(key, limiter); existed {
				if v, ok := limiters.Get(key); ok {
					limiter = v.(*rate.Limiter)
				}
			}
		}
		if !limiter.Allow() {
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
