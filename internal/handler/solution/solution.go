package solution

import (
	"robodesk/internal/handler"
	"robodesk/internal/model"
	"robodesk/internal/service"
	"robodesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type SolutionHandler struct {
	service service.SolutionService
}

func NewSolutionHandler(s service.SolutionService) *SolutionHandler {
	return &SolutionHandler{service: s}
}

// @Summary		提交定制需求
// @Description	访客提交定制开发需求，需要图形验证码
// @Accept			json
// @Produce		json
// @Param			object	body		model.SolutionSubmitReq	true	"需求内容"
// @Success		200		{object}	response.ApiResponse{data=model.SolutionSubmitRes}
// @Router			/api/v1/solutions [post]
func (h *SolutionHandler) SolutionSubmit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.SolutionSubmitReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		res, err := h.service.SolutionSubmit(ctx, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		定制需求列表
// @Produce		json
// @Param			Authorization	header		string					true	"Bearer 用户令牌"
// @Param			object			query		model.SolutionListReq	false	"查询参数"
// @Success		200				{object}	response.ApiResponse{data=model.SolutionListRes}
// @Router			/api/v1/admin/solutions [get]
func (h *SolutionHandler) SolutionList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.SolutionListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		response.JSON(ctx, nil, h.service.SolutionList(ctx, req))
	}
}

// @Summary		更新定制需求的状态、优先级或备注
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string					true	"Bearer 用户令牌"
// @Param			id				path		string					true	"需求id"
// @Param			object			body		model.SolutionUpdateReq	true	"要修改的字段"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/admin/solutions/{id} [put]
func (h *SolutionHandler) SolutionUpdate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := handler.IdParam(ctx)
		if !ok {
			return
		}
		var req model.SolutionUpdateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		response.JSON(ctx, h.service.SolutionUpdate(ctx, id, req), nil)
	}
}

// @Summary		删除定制需求
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 用户令牌"
// @Param			id				path		string	true	"需求id"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/admin/solutions/{id} [delete]
func (h *SolutionHandler) SolutionDelete() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := handler.IdParam(ctx)
		if !ok {
			return
		}
		response.JSON(ctx, h.service.SolutionDelete(ctx, id), nil)
	}
}

