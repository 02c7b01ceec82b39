package captcha

import (
	"context"

	"robodesk/pkg/errors"
	"robodesk/pkg/errors/ecode"
	"robodesk/pkg/logger"
	"robodesk/pkg/response"

	"github.com/gin-gonic/gin"
)

// Generator 生成base64编码的图形验证码
type Generator interface {
	Generate(ctx context.Context) (string, error)
}

type CaptchaHandler struct {
	gen Generator
}

func NewCaptchaHandler(gen Generator) *CaptchaHandler {
	return &CaptchaHandler{gen: gen}
}

type CaptchaRes struct {
	Image string `json:"image"` // base64编码的png
}

// @Summary		获取图形验证码
// @Produce		json
// @Success		200	{object}	response.ApiResponse{data=CaptchaRes}
// @Router			/api/v1/captcha [post]
func (h *CaptchaHandler) CaptchaGenerate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if h.gen == nil {
			response.JSON(ctx, errors.WithCode(ecode.CaptchaErr, "captcha is not available"), nil)
			return
		}
		img, err := h.gen.Generate(ctx)
		if err != nil {
			logger.Errorf("captcha: generate: %v", err)
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "could not create captcha"), nil)
			return
		}
		response.JSON(ctx, nil, CaptchaRes{Image: img})
	}
}
