package calculator

import (
	stderrors "errors"

	"robodesk/internal/calculator"
	"robodesk/internal/handler"
	"robodesk/internal/model"
	"robodesk/pkg/errors"
	"robodesk/pkg/errors/ecode"
	"robodesk/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CalculatorHandler struct {
	currency string
}

// NewCalculatorHandler currency 为金额前面显示的货币符号
func NewCalculatorHandler(currency string) *CalculatorHandler {
	return &CalculatorHandler{currency: currency}
}

// @Summary		仓位计算
// @Description	根据本金、止损点数和最大亏损比例计算可以开的合约数量
// @Accept			json
// @Produce		json
// @Param			object	body		calculator.Form	true	"计算参数"
// @Success		200		{object}	response.ApiResponse{data=model.CalculatorRes}
// @Router			/api/v1/calculator/position [post]
func (h *CalculatorHandler) Position() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var form calculator.Form
		if err := ctx.ShouldBind(&form); err != nil {
			if isMissing(err) {
				response.JSON(ctx, errors.WithCode(ecode.IncompleteInput, ""), nil)
				return
			}
			handler.BindErr(ctx, err)
			return
		}

		in, err := calculator.ParseForm(form)
		if err != nil {
			fail(ctx, err)
			return
		}
		res, err := calculator.Calculate(in)
		if err != nil {
			fail(ctx, err)
			return
		}
		response.JSON(ctx, nil, model.CalculatorRes{Result: res, Display: calculator.Format(res, h.currency)})
	}
}

// 输入不完整时不返回任何结果
func fail(ctx *gin.Context, err error) {
	if stderrors.Is(err, calculator.ErrIncompleteInput) {
		response.JSON(ctx, errors.WithCode(ecode.IncompleteInput, ""), nil)
		return
	}
	if stderrors.Is(err, calculator.ErrUnknownInstrument) {
		response.JSON(ctx, errors.Wrap(err, ecode.ValidateErr, "unknown instrument"), nil)
		return
	}
	response.JSON(ctx, errors.Wrap(err, ecode.ValidateErr, "invalid position input"), nil)
}

// @Summary		合约列表
// @Produce		json
// @Success		200	{object}	response.ApiResponse{data=[]calculator.InstrumentInfo}
// @Router			/api/v1/calculator/instruments [get]
func (h *CalculatorHandler) Instruments() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, calculator.Instruments())
	}
}

// isMissing 必填字段为空
func isMissing(err error) bool {
	var errs validator.ValidationErrors
	if !stderrors.As(err, &errs) {
		return false
	}
	for _, e := range errs {
		if e.Tag() != "required" {
			return false
		}
	}
	return true
}
