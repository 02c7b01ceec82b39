package notify

import (
	"context"
	"html"
	"strings"

	"robodesk/conf"

	"github.com/go-mail/mail"
)

type mailNotifier struct {
	cfg    conf.EmailConfig
	dialer *mail.Dialer
}

func NewMailNotifier(cfg conf.EmailConfig) Notifier {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	return &mailNotifier{cfg: cfg, dialer: d}
}

func (n *mailNotifier) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := mail.NewMessage()
	m.SetHeader("From", n.cfg.Sender)
	m.SetHeader("To", n.cfg.Recipients...)
	m.SetHeader("Subject", msg.Title)
	m.SetBody("text/plain", msg.Text())
	m.AddAlternative("text/html", "<pre>"+html.EscapeString(msg.Text())+"</pre>")
	return n.dialer.DialAndSend(m)
}

// MailEnabled smtp和收件人都配置了才发送
func MailEnabled(cfg conf.EmailConfig) bool {
	return cfg.Host != "" && cfg.Sender != "" && len(cfg.Recipients) > 0 && strings.TrimSpace(cfg.Recipients[0]) != ""
}
