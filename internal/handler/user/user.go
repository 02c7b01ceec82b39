package user

import (
	"robodesk/internal/handler"
	"robodesk/internal/model"
	"robodesk/internal/service"
	"robodesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// @Summary		当前会员资料
// @Description	返回当前登录会员的资料和套餐，同时记录登录时间
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.MeRes}
// @Router			/api/v1/me [get]
func (h *UserHandler) UserMe() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session, ok := handler.Session(ctx)
		if !ok {
			return
		}
		res, err := h.service.UserMe(ctx, session)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		会员列表
// @Description	支持搜索、套餐过滤、排序，默认不显示未激活的会员
// @Produce		json
// @Param			Authorization	header		string				true	"Bearer 用户令牌"
// @Param			object			query		model.UserListReq	false	"查询参数"
// @Success		200				{object}	response.ApiResponse{data=model.UserListRes}
// @Router			/api/v1/admin/users [get]
func (h *UserHandler) UserList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.UserListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		response.JSON(ctx, nil, h.service.UserList(ctx, req))
	}
}

// @Summary		会员详情
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 用户令牌"
// @Param			id				path		string	true	"会员id"
// @Success		200				{object}	response.ApiResponse{data=entity.User}
// @Router			/api/v1/admin/users/{id} [get]
func (h *UserHandler) UserGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.IdReq
		if err := ctx.ShouldBindUri(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		u, err := h.service.UserGet(ctx, req.Id)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, u)
	}
}

// @Summary		修改会员
// @Description	修改套餐、激活状态、管理员标记等，为空的字段不修改
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string				true	"Bearer 用户令牌"
// @Param			id				path		string				true	"会员id"
// @Param			object			body		model.UserUpdateReq	true	"要修改的字段"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/admin/users/{id} [put]
func (h *UserHandler) UserUpdate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var uri model.IdReq
		if err := ctx.ShouldBindUri(&uri); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		var req model.UserUpdateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		response.JSON(ctx, h.service.UserUpdate(ctx, uri.Id, req), nil)
	}
}

// @Summary		删除会员资料
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 用户令牌"
// @Param			id				path		string	true	"会员id"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/admin/users/{id} [delete]
func (h *UserHandler) UserDelete() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.IdReq
		if err := ctx.ShouldBindUri(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		response.JSON(ctx, h.service.UserDelete(ctx, req.Id), nil)
	}
}
