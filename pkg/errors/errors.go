package errors

import (
	"fmt"
	"robodesk/pkg/errors/ecode"

	pkgerr "github.com/pkg/errors"
)

// codeError 携带业务错误码的error
type codeError struct {
	code    int
	message string
	cause   error
}

func (e *codeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *codeError) Unwrap() error { return e.cause }

// Code 返回错误码
func (e *codeError) Code() int { return e.code }

// WithCode 创建一个带错误码的错误
func WithCode(code int, message string) error {
	if message == "" {
		message = ecode.Message(code)
	}
	return &codeError{code: code, message: message}
}

// Wrap 给err附加错误码和提示信息，err为nil时仍然返回带码的错误（Success时用于携带提示信息）
func Wrap(err error, code int, message string) error {
	if message == "" {
		message = ecode.Message(code)
	}
	if err != nil {
		err = pkgerr.WithStack(err)
	}
	return &codeError{code: code, message: message, cause: err}
}

func Wrapf(err error, code int, format string, args ...any) error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// DecodeErr 解析出错误码和给用户看的提示信息
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Message(ecode.Success)
	}
	var ce *codeError
	if As(err, &ce) {
		return ce.code, ce.message
	}
	return ecode.Unknown, err.Error()
}

// CodeOf 取出错误码，非codeError返回Unknown
func CodeOf(err error) int {
	code, _ := DecodeErr(err)
	return code
}

func New(message string) error { return pkgerr.New(message) }

func Is(err, target error) bool { return pkgerr.Is(err, target) }

func As(err error, target any) bool { return pkgerr.As(err, target) }
