package ping

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ping 健康检查，backend 为当前使用的后端（database/offline）
func Ping(backend string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("X-Backend", backend)
		ctx.String(http.StatusOK, "\r\nSuccess")
	}
}
