package checkout

import (
	"robodesk/internal/handler"
	"robodesk/internal/model"
	"robodesk/internal/service"
	"robodesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	service service.CheckoutService
}

func NewCheckoutHandler(s service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: s}
}

// @Summary		购买套餐
// @Description	创建PayPal订单，返回付款链接
// @Produce		json
// @Param			Authorization	header		string	true	"Bearer 用户令牌"
// @Param			plan			path		string	true	"套餐代码"
// @Success		200				{object}	response.ApiResponse{data=model.CheckoutStartRes}
// @Router			/api/v1/checkout/{plan} [post]
func (h *CheckoutHandler) CheckoutStart() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session, ok := handler.Session(ctx)
		if !ok {
			return
		}
		res, err := h.service.CheckoutStart(ctx, session, ctx.Param("plan"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		确认付款
// @Description	会员在PayPal付款后调用，生成合同并升级套餐；重复调用返回同一个合同
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string						true	"Bearer 用户令牌"
// @Param			object			body		model.CheckoutCaptureReq	true	"订单号"
// @Success		200				{object}	response.ApiResponse{data=model.CheckoutCaptureRes}
// @Router			/api/v1/checkout/capture [post]
func (h *CheckoutHandler) CheckoutCapture() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session, ok := handler.Session(ctx)
		if !ok {
			return
		}
		var req model.CheckoutCaptureReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			handler.BindErr(ctx, err)
			return
		}
		res, err := h.service.CheckoutCapture(ctx, session, req.OrderId)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
