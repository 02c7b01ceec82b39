package notify

import (
	"context"
	"errors"
	"testing"

	"robodesk/conf"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type recorder struct {
	got []Message
	err error
}

func (r *recorder) Notify(_ context.Context, msg Message) error {
	r.got = append(r.got, msg)
	return r.err
}

func TestMessage_Text(t *testing.T) {
	msg := Message{Title: "New request", Body: "Scalping robot", Fields: map[string]string{"email": "a@x.com", "budget": "500"}}
	assert.Equal(t, "New request\n\nScalping robot\n\nbudget: 500\nemail: a@x.com", msg.Text())
	assert.Equal(t, "Only", Message{Title: "Only"}.Text())
}

func TestMulti(t *testing.T) {
	ok := &recorder{}
	bad1 := &recorder{err: errors.New("smtp down")}
	bad2 := &recorder{err: errors.New("bot blocked")}

	err := Multi{bad1, ok, bad2}.Notify(context.Background(), Message{Title: "x"})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Len(t, ok.got, 1)

	assert.NoError(t, Multi{}.Notify(context.Background(), Message{}))
	assert.NoError(t, Nop{}.Notify(context.Background(), Message{}))
}

type fakeBot struct {
	sent []tgbotapi.Chattable
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func TestTelegramNotifier(t *testing.T) {
	bot := &fakeBot{}
	n := &telegramNotifier{bot: bot, chatID: 42}
	require.NoError(t, n.Notify(context.Background(), Message{Title: "hello"}))
	require.Len(t, bot.sent, 1)
	m := bot.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, int64(42), m.ChatID)
	assert.Equal(t, "hello", m.Text)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, n.Notify(ctx, Message{Title: "late"}))
}

func TestMailEnabled(t *testing.T) {
	assert.False(t, MailEnabled(confEmail("", nil)))
	assert.False(t, MailEnabled(confEmail("smtp.x.com", nil)))
	assert.True(t, MailEnabled(confEmail("smtp.x.com", []string{"admin@x.com"})))
}

func confEmail(host string, to []string) conf.EmailConfig {
	return conf.EmailConfig{Host: host, Port: 587, Sender: "robodesk@x.com", Recipients: to}
}
