package mail

import (
	"errors"
	"strings"

	emailverifier "github.com/AfterShip/email-verifier"
)

var (
	ErrInvalidSyntax = errors.New("email address syntax is invalid")
	ErrDisposable    = errors.New("disposable email addresses are not accepted")
)

type Verifier struct {
	verifier *emailverifier.Verifier
}

// NewVerifier 只做语法和一次性邮箱检查，不连接smtp
func NewVerifier() *Verifier {
	return &Verifier{
		verifier: emailverifier.NewVerifier().DisableSMTPCheck(),
	}
}

func (v *Verifier) VerifierEmail(email string) error {
	syntax := v.verifier.ParseAddress(strings.TrimSpace(email))
	if !syntax.Valid {
		return ErrInvalidSyntax
	}
	if v.verifier.IsDisposable(strings.ToLower(syntax.Domain)) {
		return ErrDisposable
	}
	return nil
}
