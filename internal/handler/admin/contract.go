package admin

import (
	"robodesk/internal/handler"
	"robodesk/internal/model"
	"robodesk/internal/service"
	"robodesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	service service.ContractService
}

func NewContractHandler(s service.ContractService) *ContractHandler {
	return &ContractHandler{service: s}
}

// @Summary		合同列表
// @Produce		json
// @Param			Authorization	header		string					true	"Bearer 用户令牌"
// @Param			object			query		model.ContractListReq	false	"查询参数"
// @Success		200				{object}	response.ApiResponse{data=model.ContractListRes}
// @Router			/api/v1/admin/contracts [get]
func (h *ContractHandler) ContractList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.ContractListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		response.JSON(ctx, nil, h.service.ContractList(ctx, req))
	}
}

// @Summary		合同汇总
// @Description	MRR、年化、平均客单价和各状态数量
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.ContractSummary}
// @Router			/api/v1/admin/contracts/summary [get]
func (h *ContractHandler) ContractSummary() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, h.service.ContractSummary(ctx))
	}
}

// @Summary		新增合同
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string					true	"Bearer 用户令牌"
// @Param			object			body		model.ContractCreateReq	true	"合同信息"
// @Success		200				{object}	response.ApiResponse{data=entity.Contract}
// @Router			/api/v1/admin/contracts [post]
func (h *ContractHandler) ContractCreate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.ContractCreateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		c, err := h.service.ContractCreate(ctx, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, c)
	}
}

// @Summary		修改合同
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string					true	"Bearer 用户令牌"
// @Param			id				path		string					true	"合同id"
// @Param			object			body		model.ContractUpdateReq	true	"要修改的字段"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/admin/contracts/{id} [put]
func (h *ContractHandler) ContractUpdate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := handler.IdParam(ctx)
		if !ok {
			return
		}
		var req model.ContractUpdateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		response.JSON(ctx, h.service.ContractUpdate(ctx, id, req), nil)
	}
}

// @Summary		删除合同
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 用户令牌"
// @Param			id				path		string	true	"合同id"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/admin/contracts/{id} [delete]
func (h *ContractHandler) ContractDelete() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := handler.IdParam(ctx)
		if !ok {
			return
		}
		response.JSON(ctx, h.service.ContractDelete(ctx, id), nil)
	}
}
