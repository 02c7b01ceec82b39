package response

import (
	"net/http"

	"robodesk/internal/consts"
	"robodesk/pkg/errors"
	"robodesk/pkg/errors/ecode"

	"github.com/gin-gonic/gin"
)

// 代表响应给客户端的的一个消息结构，包括错误码，错误信息，响应数据
type ApiResponse struct {
	RequestId string      `json:"request_id"` // 请求的唯一ID
	Code      int         `json:"code"`       // 错误码 0表示无错误
	Message   string      `json:"message"`    // 提示信息
	Data      interface{} `json:"data"`       // 响应数据
}

// 发送json格式数据
func JSON(c *gin.Context, err error, data interface{}) {
	code, message := errors.DecodeErr(err)
	c.JSON(statusOf(code), ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      code,
		Message:   message,
		Data:      data,
	})
}

// 失败时返回400，鉴权相关的错误码使用对应的http状态码
func statusOf(code int) int {
	switch code {
	case ecode.Success:
		return http.StatusOK
	case ecode.RequireAuthErr:
		return http.StatusUnauthorized
	case ecode.ForbiddenErr:
		return http.StatusForbidden
	case ecode.NotFoundErr:
		return http.StatusNotFound
	case ecode.TooManyRequestsErr:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

// token鉴权失败，返回401
func RequireAuthErr(c *gin.Context, err error) {
	message := "unknow error."
	if err != nil {
		message = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.RequireAuthErr,
		Message:   "invalid token:" + message,
	})
}

// 没有管理员权限，返回403
func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.ForbiddenErr,
		Message:   ecode.Message(ecode.ForbiddenErr),
	})
}

// 请求频繁，返回429
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.TooManyRequestsErr,
		Message:   "The request is too frequent. Please try again later.",
	})
}
