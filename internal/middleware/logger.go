package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"robodesk/internal/consts"
	"robodesk/pkg/logger"

	"github.com/gin-gonic/gin"
)

// 请求体超过该长度时只记录前面的部分
const maxLoggedBody = 2048

func Logger(c *gin.Context) {
	// 请求前
	t := time.Now()
	reqPath := c.Request.URL.Path
	reqId := c.GetString(consts.RequestId)
	method := c.Request.Method
	ip := c.ClientIP()

	var body string
	if c.Request.Body != nil && strings.HasPrefix(c.ContentType(), "application/json") {
		requestBody, err := io.ReadAll(c.Request.Body)
		if err != nil {
			requestBody = []byte{}
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		if len(requestBody) > maxLoggedBody {
			requestBody = requestBody[:maxLoggedBody]
		}
		body = string(requestBody)
	}

	logger.Info("[Request Start]",
		logger.Pair(consts.RequestId, reqId),
		logger.Pair("host", ip),
		logger.Pair("path", reqPath),
		logger.Pair("method", method),
		logger.Pair("body", body))

	c.Next()
	// 请求后
	latency := time.Since(t)
	logger.Info("[Request End]",
		logger.Pair(consts.RequestId, reqId),
		logger.Pair("host", ip),
		logger.Pair("path", reqPath),
		logger.Pair("status", c.Writer.Status()),
		logger.Pair("cost", latency))
}
