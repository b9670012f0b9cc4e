package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMSender delivers messages through Firebase Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender builds an FCM client from the service-account credentials.
// The private key arrives newline-escaped from the environment and is
// unescaped here.
func NewFCMSender(ctx context.Context, projectID, clientEmail, privateKey string) (*FCMSender, error) {
	creds, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   projectID,
		"client_email": clientEmail,
		"private_key":  strings.ReplaceAll(privateKey, `\n`, "\n"),
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging client: %w", err)
	}
	return &FCMSender{client: client}, nil
}

// Send delivers each message individually via SendEach.
func (s *FCMSender) Send(ctx context.Context, messages []Message) (BatchResult, error) {
	fcmMessages := make([]*messaging.Message, 0, len(messages))
	for _, m := range messages {
		fcmMessages = append(fcmMessages, toFCMMessage(m))
	}

	batch, err := s.client.SendEach(ctx, fcmMessages)
	if err != nil {
		return BatchResult{}, fmt.Errorf("fcm send failed: %w", err)
	}

	result := BatchResult{
		SuccessCount: batch.SuccessCount,
		FailureCount: batch.FailureCount,
		Responses:    make([]Result, 0, len(batch.Responses)),
	}
	for _, r := range batch.Responses {
		res := Result{Success: r.Success}
		if r.Error != nil {
			res.Error = r.Error.Error()
		}
		result.Responses = append(result.Responses, res)
	}
	return result, nil
}

func toFCMMessage(m Message) *messaging.Message {
	badge := 1
	return &messaging.Message{
		Token: m.Token,
		Notification: &messaging.Notification{
			Title: m.Title,
			Body:  m.Body,
		},
		Data: m.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:       "default",
				ChannelID:   ChannelID,
				ClickAction: "FLUTTER_NOTIFICATION_CLICK",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: &badge,
					Alert: &messaging.ApsAlert{
						Title: m.Title,
						Body:  m.Body,
					},
				},
			},
		},
	}
}

var _ Sender = (*FCMSender)(nil)
