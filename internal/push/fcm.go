// Package push delivers best-effort mobile notifications through Firebase
// Cloud Messaging. The websocket hub remains the primary delivery channel;
// FCM only reaches devices without a live socket.
package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"toolshare-backend/internal/logger"
)

// Pusher sends a notification to one device token.
type Pusher interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

type fcmPusher struct {
	client *messaging.Client
}

// NewFCMPusher initializes the Firebase app from a service-account
// credentials file.
func NewFCMPusher(ctx context.Context, credentialsFile string) (Pusher, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fcm client: %w", err)
	}
	return &fcmPusher{client: client}, nil
}

func (p *fcmPusher) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	logger.ExternalServiceCall("fcm", "Send", "title", title)
	_, err := p.client.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	logger.ExternalServiceResult("fcm", "Send", err)
	return err
}
