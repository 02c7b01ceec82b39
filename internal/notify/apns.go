package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"robodesk/conf"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
	"go.uber.org/multierr"
	"golang.org/x/net/http2"
)

// apnsNotifier 推送到管理员的iOS设备，基于token(.p8)鉴权
type apnsNotifier struct {
	cfg    conf.Apns
	client *apns2.Client
}

func NewApnsNotifier(cfg conf.Apns) (Notifier, error) {
	authKey, err := token.AuthKeyFromFile(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create APNS auth key: %w", err)
	}
	client := &apns2.Client{
		Token: &token.Token{
			AuthKey: authKey,
			KeyID:   cfg.KeyID,
			TeamID:  cfg.TeamID,
		},
		HTTPClient: &http.Client{
			Transport: &http2.Transport{
				DialTLS:         apns2.DialTLS,
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
			Timeout: apns2.HTTPClientTimeout,
		},
		Host: apns2.HostDevelopment,
	}
	if cfg.IsProd {
		client.Host = apns2.HostProduction
	}
	return &apnsNotifier{cfg: cfg, client: client}, nil
}

func (n *apnsNotifier) Notify(ctx context.Context, msg Message) error {
	pl := payload.NewPayload().AlertTitle(msg.Title).AlertBody(msg.Body).Sound("default").ThreadID("robodesk")
	for k, v := range msg.Fields {
		pl.Custom(k, v)
	}

	var err error
	for _, deviceToken := range n.cfg.DeviceTokens {
		resp, perr := n.client.PushWithContext(ctx, &apns2.Notification{
			DeviceToken: deviceToken,
			Topic:       n.cfg.Topic,
			Expiration:  time.Now().Add(24 * time.Hour),
			Payload:     pl,
		})
		if perr != nil {
			err = multierr.Append(err, perr)
			continue
		}
		if !resp.Sent() {
			err = multierr.Append(err, fmt.Errorf("APNS push failed: %s", resp.Reason))
		}
	}
	return err
}
