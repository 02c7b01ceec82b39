package validator

import (
	"errors"
	"robodesk/pkg/logger"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTrans "github.com/go-playground/validator/v10/translations/en"
	ptTrans "github.com/go-playground/validator/v10/translations/pt_BR"
)

var (
	once  sync.Once
	trans ut.Translator
)

// LazyInitGinValidator 替换gin默认validator的翻译器，language 支持 en / pt_BR
func LazyInitGinValidator(language string) {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			logger.Warnf("gin validator engine is not go-playground/validator")
			return
		}
		// 与请求结构体保持一致，使用validate tag
		v.SetTagName("validate")
		// 使用json tag作为字段名
		v.RegisterTagNameFunc(jsonTagName)

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale, pt_BR.New())
		var found bool
		trans, found = uni.GetTranslator(language)
		if !found {
			trans, _ = uni.GetTranslator("en")
			language = "en"
		}
		var err error
		switch language {
		case "pt_BR":
			err = ptTrans.RegisterDefaultTranslations(v, trans)
		default:
			err = enTrans.RegisterDefaultTranslations(v, trans)
		}
		if err != nil {
			logger.Errorf("register validator translations: %v", err)
		}
	})
}

// Translate 将校验错误翻译成可读的提示
func Translate(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || trans == nil {
		return err.Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Translate(trans))
	}
	return strings.Join(msgs, "; ")
}
