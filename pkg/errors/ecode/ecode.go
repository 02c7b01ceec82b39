package ecode

// 业务错误码，0表示成功
const (
	Success = 0
	Unknown = 10000 + iota
	ValidateErr
	RequireAuthErr
	ForbiddenErr
	NotFoundErr
	CaptchaErr
	IncompleteInput
	SaveErr
	TooManyRequestsErr
	PaymentErr
	TicketErr
)

var messages = map[int]string{
	Success:            "success",
	Unknown:            "unknown error",
	ValidateErr:        "invalid request parameters",
	RequireAuthErr:     "authentication required",
	ForbiddenErr:       "permission denied",
	NotFoundErr:        "resource not found",
	CaptchaErr:         "invalid captcha",
	IncompleteInput:    "fill in every field with a value greater than zero",
	SaveErr:            "could not save, try again",
	TooManyRequestsErr: "the request is too frequent, please try again later",
	PaymentErr:         "payment failed",
	TicketErr:          "download link is invalid or expired",
}

// Message 返回错误码默认的提示信息
func Message(code int) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return messages[Unknown]
}
