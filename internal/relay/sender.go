// Package relay implements the standalone notification relay: it accepts
// one batch request per notification and fans it out into per-device push
// deliveries through a gateway Sender.
package relay

import (
	"context"
	"fmt"
)

// ChannelID groups all app notifications under one Android channel.
const ChannelID = "trackaexpense_default_alerts"

// Message is one per-device delivery.
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// Result reports the outcome for a single device.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BatchResult aggregates per-device outcomes, mirroring the gateway's
// batch response shape.
type BatchResult struct {
	SuccessCount int      `json:"successCount"`
	FailureCount int      `json:"failureCount"`
	Responses    []Result `json:"responses"`
}

// Sender delivers messages to device endpoints. Each message is sent
// independently so one invalid token cannot fail the whole batch.
type Sender interface {
	Send(ctx context.Context, messages []Message) (BatchResult, error)
}

// BuildMessages expands a batch request into one message per token. Data
// values arrive as arbitrary JSON and are coerced to strings, since the
// push transport only carries string pairs.
func BuildMessages(tokens []string, title, body string, data map[string]any) []Message {
	normalized := make(map[string]string, len(data))
	for k, v := range data {
		normalized[k] = coerceString(v)
	}

	messages := make([]Message, 0, len(tokens))
	for _, token := range tokens {
		messages = append(messages, Message{
			Token: token,
			Title: title,
			Body:  body,
			Data:  normalized,
		})
	}
	return messages
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
