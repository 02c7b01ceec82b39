package middleware

import (
	"fmt"
	"strings"

	"robodesk/internal/consts"
	"robodesk/internal/model"
	"robodesk/pkg/jwt"
	"robodesk/pkg/response"

	"github.com/gin-gonic/gin"
)

// 请求头的形式为 Authorization: Bearer token
const authorizationHeader = "Authorization"

// AuthToken 验证后端服务签发的token，通过后把会话放进context
func AuthToken(secret, adminRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := getJwtFromHeader(c)
		if err != nil {
			response.RequireAuthErr(c, err)
			return
		}
		claims, err := jwt.ParseToken(tokenStr, secret)
		if err != nil {
			response.RequireAuthErr(c, err)
			return
		}

		session := model.Session{
			UserId:  claims.UserId(),
			Email:   claims.Email,
			IsAdmin: claims.IsAdministrator(adminRole),
		}
		c.Set(consts.UserID, session.UserId)
		c.Set(consts.SessionCtx, session)
		c.Set(consts.JWTTokenCtx, tokenStr)
		c.Next()
	}
}

// AdminOnly 必须放在 AuthToken 之后
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			response.RequireAuthErr(c, nil)
			return
		}
		if !session.IsAdmin {
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}

// GetSession 取出 AuthToken 放入的会话
func GetSession(c *gin.Context) (model.Session, bool) {
	v, ok := c.Get(consts.SessionCtx)
	if !ok {
		return model.Session{}, false
	}
	session, ok := v.(model.Session)
	return session, ok
}

func getJwtFromHeader(c *gin.Context) (string, error) {
	aHeader := c.Request.Header.Get(authorizationHeader)
	if len(aHeader) == 0 {
		return "", fmt.Errorf("token is empty")
	}
	strs := strings.SplitN(aHeader, " ", 2)
	if len(strs) != 2 || !strings.EqualFold(strs[0], "Bearer") || strs[1] == "" {
		return "", fmt.Errorf("token is malformed")
	}
	return strs[1], nil
}
