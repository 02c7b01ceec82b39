// Package handler 存放各个http接口共用的参数处理
package handler

import (
	"strconv"

	"robodesk/internal/middleware"
	"robodesk/internal/model"
	"robodesk/pkg/errors"
	"robodesk/pkg/errors/ecode"
	"robodesk/pkg/response"
	"robodesk/pkg/validator"

	"github.com/gin-gonic/gin"
)

// BindErr 参数校验失败时返回翻译后的提示
func BindErr(ctx *gin.Context, err error) {
	response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
}

// IdParam 解析路径中的雪花id
func IdParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "invalid id"), nil)
		return 0, false
	}
	return id, true
}

// Session 已登录会员，路由上必须有 AuthToken
func Session(ctx *gin.Context) (model.Session, bool) {
	session, ok := middleware.GetSession(ctx)
	if !ok {
		response.RequireAuthErr(ctx, nil)
	}
	return session, ok
}
