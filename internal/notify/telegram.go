package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender 便于测试替换
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type telegramNotifier struct {
	bot    sender
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &telegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *telegramNotifier) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := tgbotapi.NewMessage(n.chatID, msg.Text())
	m.DisableWebPagePreview = true
	_, err := n.bot.Send(m)
	return err
}
