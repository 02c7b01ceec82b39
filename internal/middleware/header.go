package middleware

import (
	"net/http"
	"strings"
	"time"

	"robodesk/internal/consts"
	"robodesk/pkg/response"
	"robodesk/utils/uuid"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru"
)

// NoCache 控制客户端不要使用缓存
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, max-age=0, must-revalidate")
		c.Header("Expires", "Thu, 01 Jan 1970 00:00:00 GMT")
		c.Header("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		c.Next()
	}
}

// Options 预检请求直接返回
func Options() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.ToUpper(c.Request.Method) != http.MethodOptions {
			c.Next()
			return
		}
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "authorization, origin, content-type, accept")
		c.Header("Allow", "HEAD,GET,POST,PUT,PATCH,DELETE,OPTIONS")
		c.Header("Content-Type", "application/json")
		c.AbortWithStatus(http.StatusOK)
	}
}

// Secure 添加安全控制和资源访问
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000")
		}
		c.Next()
	}
}

// RequestId 用来设置和透传requestId
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader("X-Request-Id")
		if requestId == "" || len(requestId) > 64 {
			requestId = uuid.GenUUID16()
		}
		c.Header("X-Request-Id", requestId)

		// 设置requestId到context中，便于后面调用链的透传
		c.Set(consts.RequestId, requestId)
		c.Next()
	}
}

// 限制缓存的最大大小为 500，且是并发安全的 LRU 缓存
var reqCache, _ = lru.New(500)

const duplicateThreshold = 1 * time.Second

// AntiDuplicateMiddleware 防止单个客户端 IP 在 1 秒内重复提交同一个接口
// 只用于写接口，不要用在websocket等实时连接上
func AntiDuplicateMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 使用IP + 接口路径 作为key 防抖动
		key := c.ClientIP() + c.Request.Method + c.Request.URL.Path
		if value, ok := reqCache.Get(key); ok {
			if time.Since(value.(time.Time)) < duplicateThreshold {
				response.TooManyRequests(c)
				return
			}
		}
		// Hit 或 Miss 都会更新时间戳
		reqCache.Add(key, time.Now())
		c.Next()
	}
}
