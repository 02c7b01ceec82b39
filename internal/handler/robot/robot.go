package robot

import (
	"robodesk/internal/handler"
	"robodesk/internal/model"
	"robodesk/internal/service"
	"robodesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type RobotHandler struct {
	service service.RobotService
}

func NewRobotHandler(s service.RobotService) *RobotHandler {
	return &RobotHandler{service: s}
}

// @Summary		会员的机器人列表
// @Description	unlocked 表示当前套餐可以下载
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.ListRes[model.RobotItem]}
// @Router			/api/v1/robots [get]
func (h *RobotHandler) RobotListForMember() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session, ok := handler.Session(ctx)
		if !ok {
			return
		}
		response.JSON(ctx, nil, h.service.RobotListForMember(ctx, session))
	}
}

// @Summary		获取下载链接
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 用户令牌"
// @Param			id				path		string	true	"机器人id"
// @Success		200				{object}	response.ApiResponse{data=model.RobotLinkRes}
// @Router			/api/v1/robots/{id}/link [get]
func (h *RobotHandler) RobotLink() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session, ok := handler.Session(ctx)
		if !ok {
			return
		}
		id, ok := handler.IdParam(ctx)
		if !ok {
			return
		}
		res, err := h.service.RobotLink(ctx, session, id)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		下载机器人文件
// @Description	票据本身就是凭证，不需要token
// @Produce		octet-stream
// @Param			ticket	path	string	true	"下载票据"
// @Router			/api/v1/download/{ticket} [get]
func (h *RobotHandler) RobotDownload() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		file, err := h.service.RobotOpen(ctx, ctx.Param("ticket"), ctx.ClientIP())
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		ctx.FileAttachment(file.Path, file.Name)
	}
}

// @Summary		机器人列表（管理）
// @Produce		json
// @Param			Authorization	header		string			true	"Bearer 用户令牌"
// @Param			object			query		model.ListReq	false	"查询参数"
// @Success		200				{object}	response.ApiResponse{data=model.ListRes[entity.Robot]}
// @Router			/api/v1/admin/robots [get]
func (h *RobotHandler) RobotList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.ListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		response.JSON(ctx, nil, h.service.RobotList(ctx, req))
	}
}

// @Summary		新增机器人
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string					true	"Bearer 用户令牌"
// @Param			object			body		model.RobotCreateReq	true	"机器人信息"
// @Success		200				{object}	response.ApiResponse{data=entity.Robot}
// @Router			/api/v1/admin/robots [post]
func (h *RobotHandler) RobotCreate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.RobotCreateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		r, err := h.service.RobotCreate(ctx, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, r)
	}
}

// @Summary		修改机器人
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string					true	"Bearer 用户令牌"
// @Param			id				path		string					true	"机器人id"
// @Param			object			body		model.RobotUpdateReq	true	"要修改的字段"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/admin/robots/{id} [put]
func (h *RobotHandler) RobotUpdate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := handler.IdParam(ctx)
		if !ok {
			return
		}
		var req model.RobotUpdateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		response.JSON(ctx, h.service.RobotUpdate(ctx, id, req), nil)
	}
}

// @Summary		删除机器人
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 用户令牌"
// @Param			id				path		string	true	"机器人id"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/admin/robots/{id} [delete]
func (h *RobotHandler) RobotDelete() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := handler.IdParam(ctx)
		if !ok {
			return
		}
		response.JSON(ctx, h.service.RobotDelete(ctx, id), nil)
	}
}
