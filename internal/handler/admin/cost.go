package admin

import (
	"robodesk/internal/handler"
	"robodesk/internal/model"
	"robodesk/internal/service"
	"robodesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type CostHandler struct {
	service service.CostService
}

func NewCostHandler(s service.CostService) *CostHandler {
	return &CostHandler{service: s}
}

// @Summary		成本列表
// @Produce		json
// @Param			Authorization	header		string					true	"Bearer 用户令牌"
// @Param			object			query		model.CostListReq	false	"查询参数"
// @Success		200				{object}	response.ApiResponse{data=model.CostListRes}
// @Router			/api/v1/admin/costs [get]
func (h *CostHandler) CostList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.CostListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		response.JSON(ctx, nil, h.service.CostList(ctx, req))
	}
}

// @Summary		成本汇总
// @Description	总额、每月重复成本和分类合计
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.CostSummary}
// @Router			/api/v1/admin/costs/summary [get]
func (h *CostHandler) CostSummary() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, h.service.CostSummary(ctx))
	}
}

// @Summary		新增成本
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string					true	"Bearer 用户令牌"
// @Param			object			body		model.CostCreateReq	true	"成本信息"
// @Success		200				{object}	response.ApiResponse{data=entity.Cost}
// @Router			/api/v1/admin/costs [post]
func (h *CostHandler) CostCreate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.CostCreateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		c, err := h.service.CostCreate(ctx, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, c)
	}
}

// @Summary		修改成本
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string					true	"Bearer 用户令牌"
// @Param			id				path		string					true	"成本id"
// @Param			object			body		model.CostUpdateReq	true	"要修改的字段"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/admin/costs/{id} [put]
func (h *CostHandler) CostUpdate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := handler.IdParam(ctx)
		if !ok {
			return
		}
		var req model.CostUpdateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		response.JSON(ctx, h.service.CostUpdate(ctx, id, req), nil)
	}
}

// @Summary		删除成本
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 用户令牌"
// @Param			id				path		string	true	"成本id"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/admin/costs/{id} [delete]
func (h *CostHandler) CostDelete() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := handler.IdParam(ctx)
		if !ok {
			return
		}
		response.JSON(ctx, h.service.CostDelete(ctx, id), nil)
	}
}
